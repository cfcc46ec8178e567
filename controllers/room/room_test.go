package room

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	bookingService "dormly/services/booking"
	roomService "dormly/services/room"
	"dormly/types"
	roomTypes "dormly/types/room"

	"github.com/gofiber/fiber/v2"
)

func newRoomApp() *fiber.App {
	// Invalid updates are refused before any transaction starts.
	controller := NewRoomController(roomService.NewService(nil), bookingService.NewService(nil))

	app := fiber.New()
	app.Put("/api/rooms/:id", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(5))
		return c.Next()
	}, controller.Update)
	return app
}

func TestUpdateReportsEveryViolation(t *testing.T) {
	req := httptest.NewRequest("PUT", "/api/rooms/3", strings.NewReader(`{"status":"vacant","cur_occupancy":-1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := newRoomApp().Test(req)
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
	want := []string{roomTypes.MsgInvalidStatus, roomTypes.MsgInvalidOccupancy}
	if !reflect.DeepEqual(got.Data.Errors, want) {
		t.Errorf("errors = %v, want %v", got.Data.Errors, want)
	}
}

func TestUpdateRejectsBadRoomID(t *testing.T) {
	req := httptest.NewRequest("PUT", "/api/rooms/zero", strings.NewReader(`{"cur_occupancy":1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := newRoomApp().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
