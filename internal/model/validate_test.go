package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() UserRequest {
	return UserRequest{
		Address:        "123 Collins St, Melbourne",
		CommuteMax:     30,
		TransportModes: []TransportMode{ModeDriving},
		Weights:        Weights{Rent: 0.4, Commute: 0.3, Safety: 0.18, Lifestyle: 0.12},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(r *UserRequest) {}},
		{
			name:    "missing address",
			mutate:  func(r *UserRequest) { r.Address = "" },
			wantErr: "address",
		},
		{
			name:    "zero commute max",
			mutate:  func(r *UserRequest) { r.CommuteMax = 0 },
			wantErr: "commuteMax",
		},
		{
			name:    "no modes",
			mutate:  func(r *UserRequest) { r.TransportModes = nil },
			wantErr: "transport mode",
		},
		{
			name: "too many modes",
			mutate: func(r *UserRequest) {
				r.TransportModes = []TransportMode{ModeDriving, ModeWalking, ModePublicTransport, ModeDriving}
			},
			wantErr: "too many",
		},
		{
			name:    "unknown mode",
			mutate:  func(r *UserRequest) { r.TransportModes = []TransportMode{"teleport"} },
			wantErr: "unrecognized transport mode",
		},
		{
			name:    "unknown home type",
			mutate:  func(r *UserRequest) { r.HomeType = "castle" },
			wantErr: "unrecognized home type",
		},
		{
			name:   "valid home type",
			mutate: func(r *UserRequest) { r.HomeType = HomeTownhouse },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestModeJSONKey(t *testing.T) {
	assert.Equal(t, "driving", ModeDriving.JSONKey())
	assert.Equal(t, "publicTransport", ModePublicTransport.JSONKey())
	assert.Equal(t, "walking", ModeWalking.JSONKey())
}
