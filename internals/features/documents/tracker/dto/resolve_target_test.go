package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// resolveVia: jalankan ResolveActionTarget lewat app fiber beneran supaya
// path param & body parser ikut teruji.
func resolveVia(t *testing.T, path, reqPath, body string) (uuid.UUID, int) {
	t.Helper()

	app := fiber.New()
	var got uuid.UUID
	app.Post(path, func(c *fiber.Ctx) error {
		id, err := ResolveActionTarget(c)
		if err != nil {
			return err
		}
		got = id
		return c.SendStatus(fiber.StatusOK)
	})

	var req = httptest.NewRequest("POST", reqPath, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return got, resp.StatusCode
}

func TestResolveActionTargetPathParam(t *testing.T) {
	want := uuid.New()
	got, code := resolveVia(t, "/act/:id", "/act/"+want.String(), "")
	if code != fiber.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if got != want {
		t.Errorf("id = %s, want %s", got, want)
	}
}

func TestResolveActionTargetBodyVariants(t *testing.T) {
	want := uuid.New()
	id := want.String()

	cases := []struct {
		label string
		body  string
	}{
		{"name", `{"name":"` + id + `"}`},
		{"docname", `{"docname":"` + id + `"}`},
		{"doc string", `{"doc":"` + id + `"}`},
		{"doc object", `{"doc":{"name":"` + id + `"}}`},
		{"doc json-in-string", `{"doc":"{\"name\":\"` + id + `\"}"}`},
	}

	for _, tc := range cases {
		got, code := resolveVia(t, "/act/:id?", "/act/", tc.body)
		if code != fiber.StatusOK {
			t.Errorf("%s: status = %d", tc.label, code)
			continue
		}
		if got != want {
			t.Errorf("%s: id = %s, want %s", tc.label, got, want)
		}
	}
}

func TestResolveActionTargetMissing(t *testing.T) {
	_, code := resolveVia(t, "/act/:id?", "/act/", `{"note":"tanpa target"}`)
	if code != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}

	_, code = resolveVia(t, "/act/:id?", "/act/bukan-uuid", "")
	if code != fiber.StatusBadRequest {
		t.Errorf("id invalid: status = %d, want 400", code)
	}
}
