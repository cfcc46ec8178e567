package dorm

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"

	dormService "dormly/services/dorm"
	"dormly/types"
	dormTypes "dormly/types/dorm"

	"github.com/gofiber/fiber/v2"
)

func newDormApp() *fiber.App {
	// Bad query values are refused before the database is reached.
	controller := NewDormController(nil, dormService.NewService(nil))

	app := fiber.New()
	app.Get("/api/dorms/:id", controller.Show)
	return app
}

func TestShowRejectsBadOrigin(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lat only", "?lat=13.7", []string{dormTypes.MsgIncompletePos}},
		{"both malformed", "?lat=x&lng=500", []string{dormTypes.MsgInvalidLat, dormTypes.MsgInvalidLng}},
	}

	app := newDormApp()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/dorms/1"+tc.query, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}

			var got struct {
				Data types.ValidationErrors `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got.Data.Errors, tc.want) {
				t.Errorf("errors = %v, want %v", got.Data.Errors, tc.want)
			}
		})
	}
}

func TestShowRejectsBadDormID(t *testing.T) {
	resp, err := newDormApp().Test(httptest.NewRequest("GET", "/api/dorms/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
