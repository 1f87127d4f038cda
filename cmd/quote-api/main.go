package main

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
)

func main() {
	app := mustBootstrapQuoteAPI()
	defer app.Close()

	if err := app.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) && app.ctx.Err() == nil {
		slog.Error("quote-api stopped", "error", err.Error())
		panic(err)
	}
}
