package api

import (
	"net/http"
	"strings"

	"github.com/pingcap/errcode"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/log"
	"github.com/unrolled/render"
	"go.uber.org/zap/zapcore"
)

type logHandler struct {
	rd *render.Render
}

func newLogHandler(rd *render.Render) *logHandler {
	return &logHandler{rd: rd}
}

// Handle sets the log level from a JSON string such as "debug".
func (h *logHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var level string
	if err := readJSONRespondError(h.rd, w, r.Body, &level); err != nil {
		return
	}
	level = strings.ToLower(level)
	if level == "warning" {
		level = "warn"
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(errors.Annotatef(err, "log level %q", level)))
		return
	}
	log.SetLevelByString(level)
	h.rd.JSON(w, http.StatusOK, log.GetLevel().String())
}
