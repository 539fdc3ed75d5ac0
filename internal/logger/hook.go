package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ để không block request handling.
// Entries được buffer vào channel và ghi ra các writers trong một goroutine riêng.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHook tạo async hook ghi ra nhiều writers.
// bufferSize <= 0 thì dùng mặc định 1000 entries.
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào channel, không block.
// Channel đầy thì bỏ qua entry; hook đã đóng thì ghi trực tiếp.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()

	if closed {
		data, err := h.format(entry)
		if err != nil {
			return err
		}
		for _, w := range h.writers {
			_, _ = w.Write(data)
		}
		return nil
	}

	select {
	case h.entries <- entry:
	default:
		// Channel đầy, bỏ qua để không block caller
	}
	return nil
}

func (h *AsyncHook) format(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// processEntries ghi entries ra writers trong goroutine riêng.
// Có recover để panic trong logger không làm crash server.
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()

			data, err := h.format(entry)
			if err != nil {
				return
			}
			for _, w := range h.writers {
				if _, err := w.Write(data); err != nil {
					continue
				}
			}
		}()
	}
}

// Close đóng hook và đợi toàn bộ entries được ghi xong.
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
	return nil
}
