// file: internals/features/documents/tracker/dto/resolve_target.go
package dto

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* =========================================================
   Adapter payload legacy untuk action endpoint.
   Client lama kirim target dokumen macam-macam:
   - path param :id
   - body {"name": "..."} / {"docname": "..."} / {"doc": "..."}
   - body {"doc": "{\"name\": \"...\"}"} (JSON dalam string)
   Decoding di sini, BUKAN di service — service cuma terima uuid.
   ========================================================= */

type actionTargetBody struct {
	Name    string          `json:"name"`
	Docname string          `json:"docname"`
	Doc     json.RawMessage `json:"doc"`
}

// ResolveActionTarget ambil document_tracker_id dari path param atau body legacy.
func ResolveActionTarget(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Params("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "document_tracker_id invalid")
		}
		return id, nil
	}

	var body actionTargetBody
	if err := c.BodyParser(&body); err == nil {
		for _, cand := range []string{body.Name, body.Docname} {
			if id, ok := tryParseID(cand); ok {
				return id, nil
			}
		}
		if len(body.Doc) > 0 {
			if id, ok := resolveDocField(body.Doc); ok {
				return id, nil
			}
		}
	}

	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Document id wajib diisi")
}

// resolveDocField: "doc" bisa berupa string id, JSON object, atau JSON object
// yang dikirim sebagai string.
func resolveDocField(raw json.RawMessage) (uuid.UUID, bool) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		trimmed := strings.TrimSpace(asString)
		if strings.HasPrefix(trimmed, "{") {
			var nested map[string]any
			if err := json.Unmarshal([]byte(trimmed), &nested); err == nil {
				return idFromMap(nested)
			}
			return uuid.Nil, false
		}
		return tryParseID(trimmed)
	}

	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return idFromMap(asMap)
	}

	return uuid.Nil, false
}

func idFromMap(m map[string]any) (uuid.UUID, bool) {
	for _, key := range []string{"name", "docname", "doc"} {
		if s, ok := m[key].(string); ok {
			if id, ok := tryParseID(s); ok {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}

func tryParseID(s string) (uuid.UUID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
