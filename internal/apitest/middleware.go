package apitest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// container копит мидлвари для очередной группы операций
type container struct {
	huma.Middlewares
}

func newContainer() *container {
	return &container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

func (mc *container) Add(middleware func(ctx huma.Context, next func(huma.Context))) {
	mc.Middlewares = append(mc.Middlewares, middleware)
}

// GetAllAndClear возвращает накопленные мидлвари и очищает список
func (mc *container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}

// requestLogger пишет в лог каждый обработанный запрос
func requestLogger(log *slog.Logger) func(huma.Context, func(huma.Context)) {
	log = log.With(slog.String("component", "http_logger"))

	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		method := ctx.Method()
		path := ctx.URL().Path

		next(ctx)

		log.Debug("HTTP request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", ctx.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// writeDetail отвечает ошибкой в формате {"detail": "..."} в обход huma
func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
