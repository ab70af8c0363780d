package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/strataforge/agsi/pkg/codec"
)

func documentBody(t *testing.T) *bytes.Reader {
	t.Helper()
	data, err := codec.Serialize(testDocument(), codec.FormatJSONCompact)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(data)
}

func TestHandleValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/validate", documentBody(t))
	rec := httptest.NewRecorder()
	handleValidate(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !out.Valid {
		t.Errorf("valid = false, want true; body: %s", rec.Body)
	}
}

func TestHandleValidateBadBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/validate", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	handleValidate(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out["code"] != "JSON_PARSE" {
		t.Errorf("code = %q, want JSON_PARSE", out["code"])
	}
}

func TestHandleInfo(t *testing.T) {
	req := httptest.NewRequest("POST", "/info", documentBody(t))
	rec := httptest.NewRecorder()
	handleInfo(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info documentInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if info.FileID != "TEST001" || info.MaterialCount != 2 {
		t.Errorf("info = %+v, want TEST001 with 2 materials", info)
	}
}

func TestHandleMaterialsFilter(t *testing.T) {
	req := httptest.NewRequest("POST", "/materials?materialType=ROCK", documentBody(t))
	rec := httptest.NewRecorder()
	handleMaterials(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var matches []materialMatch
	if err := json.Unmarshal(rec.Body.Bytes(), &matches); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(matches) != 1 || matches[0].Material.ID != "MAT002" {
		t.Errorf("matches = %+v, want only MAT002", matches)
	}
}
