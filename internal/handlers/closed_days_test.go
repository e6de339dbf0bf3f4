package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosedDayRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  ClosedDayRequest
		ok   bool
	}{
		{"whole day block", ClosedDayRequest{Date: "2026-03-12", Category: "full_block"}, true},
		{"window block", ClosedDayRequest{Date: "2026-03-12", StartTime: "09:00", EndTime: "12:00", Category: "partial_block"}, true},
		{"bad date", ClosedDayRequest{Date: "12/03/2026", Category: "full_block"}, false},
		{"start without end", ClosedDayRequest{Date: "2026-03-12", StartTime: "09:00", Category: "partial_block"}, false},
		{"end without start", ClosedDayRequest{Date: "2026-03-12", EndTime: "12:00", Category: "partial_block"}, false},
		{"bad start time", ClosedDayRequest{Date: "2026-03-12", StartTime: "9am", EndTime: "12:00", Category: "partial_block"}, false},
		{"end before start", ClosedDayRequest{Date: "2026-03-12", StartTime: "12:00", EndTime: "09:00", Category: "partial_block"}, false},
		{"end equals start", ClosedDayRequest{Date: "2026-03-12", StartTime: "09:00", EndTime: "09:00", Category: "partial_block"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.req.validate()
			if tt.ok {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
