package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exp_commerce/internal/logger"
)

// CreateIndexes tạo index cho một collection từ các struct tag `index` của model.
// Tag hỗ trợ: single:1, single:-1, unique, unique,sparse, ttl:<seconds>.
// Index compound nằm trong CreateMarketplaceIndexes vì không biểu diễn được
// qua tag đơn field.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = info
		}
	}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := bsonFieldName(field)
		if bsonField == "" {
			continue
		}

		for _, spec := range strings.Split(tag, ";") {
			spec = strings.TrimSpace(spec)
			switch {
			case strings.HasPrefix(spec, "single"):
				order := 1
				if strings.HasSuffix(spec, ":-1") {
					order = -1
				}
				name := bsonField + "_single"
				if err := ensureIndex(ctx, collection, existing, name,
					bson.D{{Key: bsonField, Value: order}}, options.Index().SetName(name)); err != nil {
					return err
				}

			case strings.HasPrefix(spec, "unique"):
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if strings.Contains(spec, "sparse") {
					opts = opts.SetSparse(true)
				}
				if err := ensureIndex(ctx, collection, existing, name,
					bson.D{{Key: bsonField, Value: 1}}, opts); err != nil {
					return err
				}

			case strings.HasPrefix(spec, "ttl:"):
				seconds, err := strconv.Atoi(strings.TrimPrefix(spec, "ttl:"))
				if err != nil {
					return fmt.Errorf("TTL không hợp lệ cho field %s: %w", bsonField, err)
				}
				name := bsonField + "_ttl"
				opts := options.Index().SetName(name).SetExpireAfterSeconds(int32(seconds))
				if err := ensureIndex(ctx, collection, existing, name,
					bson.D{{Key: bsonField, Value: 1}}, opts); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// bsonFieldName lấy tên field trong document từ bson tag
func bsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("bson")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

// ensureIndex tạo index nếu chưa có, thay thế nếu cấu hình đổi
func ensureIndex(
	ctx context.Context,
	collection *mongo.Collection,
	existing map[string]bson.M,
	name string,
	keys bson.D,
	opts *options.IndexOptions,
) error {
	if current, ok := existing[name]; ok {
		if indexMatches(current, keys, opts) {
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, name); err != nil {
			return fmt.Errorf("không thể xóa index %s: %w", name, err)
		}
		logger.GetAppLogger().WithField("index", name).Info("Đã xóa index cũ do cấu hình đổi")
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); err != nil {
		return fmt.Errorf("không thể tạo index %s: %w", name, err)
	}
	logger.GetAppLogger().WithFields(map[string]interface{}{
		"collection": collection.Name(),
		"index":      name,
	}).Info("Đã tạo index")
	return nil
}

// indexMatches so sánh index hiện có với cấu hình mong muốn
func indexMatches(current bson.M, keys bson.D, opts *options.IndexOptions) bool {
	currentKeys, ok := current["key"].(bson.M)
	if !ok || len(currentKeys) != len(keys) {
		return false
	}
	for _, key := range keys {
		value, exists := currentKeys[key.Key]
		if !exists {
			return false
		}
		want, isInt := key.Value.(int)
		if !isInt {
			if value != key.Value {
				return false
			}
			continue
		}
		switch v := value.(type) {
		case int32:
			if int(v) != want {
				return false
			}
		case int64:
			if int(v) != want {
				return false
			}
		case float64:
			if int(v) != want {
				return false
			}
		default:
			return false
		}
	}

	currentUnique, _ := current["unique"].(bool)
	wantUnique := opts.Unique != nil && *opts.Unique
	if currentUnique != wantUnique {
		return false
	}

	if opts.ExpireAfterSeconds != nil {
		ttl, ok := current["expireAfterSeconds"].(int32)
		if !ok || ttl != *opts.ExpireAfterSeconds {
			return false
		}
	}

	return true
}
