package httpErrors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing file", ErrNoFile, http.StatusBadRequest},
		{"wrapped with pkg/errors", errors.Wrap(ErrNotFound, "labelingUC.Resegment.GetSummary"), http.StatusNotFound},
		{"wrapped with fmt", fmt.Errorf("probe video: %w", ErrUnprocessableMedia), http.StatusUnprocessableEntity},
		{"rest error passes through", NewBadRequestError("bad json"), http.StatusBadRequest},
		{"deadline", errors.Wrap(context.DeadlineExceeded, "analyze"), http.StatusRequestTimeout},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ErrorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Implements(t, (*RestErr)(nil), body)
		})
	}
}

func TestParseErrors_MissingFileMessage(t *testing.T) {
	restErr := ParseErrors(errors.Wrap(ErrNoFile, "analyzeHandler.Analyze"))
	assert.Equal(t, "no file uploaded", restErr.(RestError).ErrError)
}

func TestParseErrors_HidesInternalDetails(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{
			name:   "internal",
			err:    errors.Wrap(errors.New("open /tmp/analyze-123.mp4: no space left on device"), "analyzeUC.Analyze.spool"),
			status: http.StatusInternalServerError,
			msg:    ErrInternalServer.Error(),
		},
		{
			name:   "unreadable media",
			err:    errors.Wrapf(ErrUnprocessableMedia, "ffprobe %s: exit status 1", "/tmp/analyze-123.mp4"),
			status: http.StatusUnprocessableEntity,
			msg:    ErrUnprocessableMedia.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restErr := ParseErrors(tt.err)
			assert.Equal(t, tt.status, restErr.Status())
			assert.Equal(t, tt.msg, restErr.(RestError).ErrError)
			assert.Nil(t, restErr.Causes())
			assert.NotContains(t, restErr.Error(), "/tmp")
			assert.NotContains(t, restErr.Error(), "analyzeUC")
		})
	}
}
