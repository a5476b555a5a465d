package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    PhoneNumber
		wantErr bool
	}{
		{name: "number", body: `{"phone": 5551234}`, want: "5551234"},
		{name: "string", body: `{"phone": "5551234"}`, want: "5551234"},
		{name: "null", body: `{"phone": null}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
		{name: "bool", body: `{"phone": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CustomerRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Phone)
		})
	}
}
