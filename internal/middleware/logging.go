package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// logger — общий регистратор мидлвари. По умолчанию no-op, сервер задаёт свой через SetLogger.
var logger = zap.NewNop().Sugar()

// SetLogger передаёт регистратор в мидлварь логирования.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

// responseData хранит сведения об ответе для логирования.
type responseData struct {
	status int
	size   int
}

// loggingResponseWriter — обёртка над http.ResponseWriter, считающая статус и размер.
type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// Flush пробрасывает флаш на исходный writer — нужно для SSE-подписок.
func (r *loggingResponseWriter) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// WithLogging логирует метод, путь, статус, размер и длительность запроса.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rd := &responseData{status: http.StatusOK}
		lw := &loggingResponseWriter{ResponseWriter: w, responseData: rd}

		next.ServeHTTP(lw, r)

		logger.Infow("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", rd.status,
			"size", rd.size,
			"duration", time.Since(start),
		)
	})
}
