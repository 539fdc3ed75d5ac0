package global

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"exp_commerce/internal/utility"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("exists", validateExists)
	_ = Validate.RegisterValidation("date_ymd", validateDateYMD)
	_ = Validate.RegisterValidation("weekday", validateWeekday)
	_ = Validate.RegisterValidation("slot_hhmm", validateSlotHHMM)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateExists kiểm tra ObjectID tồn tại trong collection (foreign key validation)
// Format: validate:"exists=<collection_name>"
// Ví dụ: validate:"exists=vendors"
func validateExists(fl validator.FieldLevel) bool {
	value := fl.Field()

	collectionName := fl.Param()
	if collectionName == "" {
		return false
	}

	var objID primitive.ObjectID
	switch v := value.Interface().(type) {
	case string:
		if v == "" {
			return true // Chuỗi rỗng = optional, bỏ qua (khi có omitempty)
		}
		var err error
		objID, err = primitive.ObjectIDFromHex(v)
		if err != nil {
			return false
		}
	case primitive.ObjectID:
		if v == primitive.NilObjectID {
			return true
		}
		objID = v
	case *primitive.ObjectID:
		if v == nil {
			return true
		}
		objID = *v
	default:
		return false
	}

	collection, exist := RegistryCollections.Get(collectionName)
	if !exist {
		return false
	}

	count, err := collection.CountDocuments(context.Background(), bson.M{"_id": objID})
	if err != nil {
		return false
	}
	return count > 0
}

// validateDateYMD kiểm tra chuỗi ngày theo định dạng YYYY-MM-DD
func validateDateYMD(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Rỗng = optional, bỏ qua (khi có omitempty)
	}
	_, err := utility.ParseDateYMD(value)
	return err == nil
}

// validateWeekday kiểm tra giá trị thứ trong tuần thuộc 0..6 (0 = Chủ nhật)
func validateWeekday(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 6
}

var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validateSlotHHMM kiểm tra slot theo định dạng HH:MM hoặc HH:MM-HH:MM
func validateSlotHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	parts := strings.Split(value, "-")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if !slotPattern.MatchString(p) {
			return false
		}
	}
	if len(parts) == 2 {
		// Giờ kết thúc phải sau giờ bắt đầu
		start := toMinutes(parts[0])
		end := toMinutes(parts[1])
		if end <= start {
			return false
		}
	}
	return true
}

func toMinutes(hhmm string) int {
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	return h*60 + m
}
