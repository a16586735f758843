package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldlab/crop-advisor/internal/classify"
	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

func newServerForTest(t *testing.T, classifier classify.Classifier) http.Handler {
	t.Helper()
	catalog, err := refdata.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	return NewServer(catalog, classifier)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	blob, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(blob))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rr)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %s", rr.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestHealthReportsCatalogSizes(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := get(t, h, "/v1/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "ok" {
		t.Fatalf("status field = %v", body["status"])
	}
	catalog, ok := body["catalog"].(map[string]any)
	if !ok {
		t.Fatalf("catalog missing: %s", rr.Body.String())
	}
	if catalog["diseases"].(float64) == 0 || catalog["treatments"].(float64) == 0 {
		t.Fatalf("catalog sizes should be non-zero: %v", catalog)
	}
	if body["classifier"] != false {
		t.Fatalf("classifier should report false without one configured")
	}
}

func TestAssessHighConfidenceFusarium(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := postJSON(t, h, "/v1/assess", map[string]any{
		"predictions": []map[string]any{
			{"disease": "Fusarium Wilt", "confidence": 0.95},
		},
		"season": "summer",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	plan, ok := body["plan"].(map[string]any)
	if !ok {
		t.Fatalf("plan missing: %s", rr.Body.String())
	}
	if plan["calculated_urgency"] != "critical" {
		t.Fatalf("calculated_urgency = %v, want critical", plan["calculated_urgency"])
	}
	if body["disclaimer"] == "" || body["disclaimer"] == nil {
		t.Fatal("disclaimer missing from envelope")
	}
	if body["seasonal_risk"] == nil {
		t.Fatal("seasonal_risk missing despite season being set")
	}
	if body["report_markdown"] == "" || body["report_markdown"] == nil {
		t.Fatal("report_markdown missing from envelope")
	}
}

func TestAssessUnknownDiseaseDegradesToDefaultPlan(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := postJSON(t, h, "/v1/assess", map[string]any{
		"predictions": []map[string]any{
			{"disease": "Mystery Blight", "confidence": 0.9},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("unknown disease should degrade, not fail: status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	plan := body["plan"].(map[string]any)
	if plan["urgency"] != "medium" {
		t.Fatalf("default plan urgency = %v, want medium", plan["urgency"])
	}
	if _, has := plan["calculated_urgency"]; has {
		t.Fatalf("default plan must not carry calculated_urgency: %v", plan)
	}
}

func TestAssessRejectsInvalidConfidence(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := postJSON(t, h, "/v1/assess", map[string]any{
		"predictions": []map[string]any{
			{"disease": "Fusarium Wilt", "confidence": 1.5},
		},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400; body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != refdata.CodeValidation {
		t.Fatalf("error code = %q, want %q", code, refdata.CodeValidation)
	}
}

func TestAssessRejectsEmptyPredictions(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := postJSON(t, h, "/v1/assess", map[string]any{"predictions": []any{}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400; body=%s", rr.Code, rr.Body.String())
	}
}

func TestAssessRejectsWrongMethod(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := get(t, h, "/v1/assess")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d, want 405", rr.Code)
	}
}

func TestPredictWithoutClassifier(t *testing.T) {
	h := newServerForTest(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "leaf.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("fake image bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/predict", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503; body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != refdata.CodeUnavailable {
		t.Fatalf("error code = %q, want %q", code, refdata.CodeUnavailable)
	}
}

func TestPredictRunsFullPipeline(t *testing.T) {
	h := newServerForTest(t, &classify.StaticClassifier{
		Predictions: []pestinfer.DiseasePrediction{
			{Disease: "Bacterial Blight", Confidence: 0.88},
			{Disease: "Target Spot", Confidence: 0.07},
		},
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "leaf.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("fake image bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/predict?season=spring", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	predictions, ok := body["predictions"].([]any)
	if !ok || len(predictions) != 2 {
		t.Fatalf("predictions = %v, want the classifier's two entries", body["predictions"])
	}
	first := predictions[0].(map[string]any)
	if first["disease"] != "Bacterial Blight" {
		t.Fatalf("top prediction = %v", first)
	}
	if body["season"] != "spring" {
		t.Fatalf("season = %v, want spring", body["season"])
	}
	if body["plan"] == nil {
		t.Fatal("plan missing from envelope")
	}
}

func TestPredictRequiresUpload(t *testing.T) {
	h := newServerForTest(t, &classify.StaticClassifier{})
	req := httptest.NewRequest(http.MethodPost, "/v1/predict", bytes.NewReader(nil))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400; body=%s", rr.Code, rr.Body.String())
	}
}

func TestCatalogListAndDetail(t *testing.T) {
	h := newServerForTest(t, nil)

	rr := get(t, h, "/v1/catalog/diseases")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	diseases, ok := body["diseases"].([]any)
	if !ok || len(diseases) == 0 {
		t.Fatalf("diseases = %v", body["diseases"])
	}

	rr = get(t, h, "/v1/catalog/diseases/Fusarium%20Wilt")
	if rr.Code != http.StatusOK {
		t.Fatalf("detail status=%d body=%s", rr.Code, rr.Body.String())
	}
	detail := decodeBody(t, rr)
	if detail["disease"] != "Fusarium Wilt" {
		t.Fatalf("disease = %v", detail["disease"])
	}
	pests, ok := detail["pests"].([]any)
	if !ok || len(pests) == 0 {
		t.Fatalf("pests = %v", detail["pests"])
	}
	if detail["treatment_profile"] == nil {
		t.Fatal("treatment_profile missing")
	}
}

func TestCatalogDiseaseNotFound(t *testing.T) {
	h := newServerForTest(t, nil)
	rr := get(t, h, "/v1/catalog/diseases/No%20Such%20Disease")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404; body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != refdata.CodeNotFound {
		t.Fatalf("error code = %q, want %q", code, refdata.CodeNotFound)
	}
}
