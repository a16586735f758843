package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fieldlab/crop-advisor/internal/classify"
	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
	"github.com/fieldlab/crop-advisor/internal/remedy"
)

// maxUploadBytes caps leaf image uploads on /v1/predict.
const maxUploadBytes = 16 << 20

type Server struct {
	catalog    *refdata.Catalog
	advisor    *remedy.Advisor
	classifier classify.Classifier
}

// NewServer builds the HTTP surface over a loaded catalog. The classifier
// is optional; without one /v1/predict reports the service as unavailable.
func NewServer(catalog *refdata.Catalog, classifier classify.Classifier) http.Handler {
	s := &Server{
		catalog:    catalog,
		advisor:    remedy.NewAdvisor(catalog),
		classifier: classifier,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", s.handleHealth)
	mux.HandleFunc("/v1/assess", s.handleAssess)
	mux.HandleFunc("/v1/predict", s.handlePredict)
	mux.HandleFunc("/v1/catalog/diseases", s.handleListDiseases)
	mux.HandleFunc("/v1/catalog/diseases/", s.handleDisease)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	var re *refdata.Error
	if errors.As(err, &re) {
		writeJSON(w, re.Status, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":    re.Code,
				"message": re.Message,
			},
		})
		return
	}
	writeJSON(w, 500, map[string]any{
		"ok": false,
		"error": map[string]any{
			"code":    refdata.CodeInternal,
			"message": err.Error(),
		},
	})
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func decodeJSONBytes(blob []byte, dst any) error {
	return json.Unmarshal(blob, dst)
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	diseases, details, treatments := s.catalog.Sizes()
	writeJSON(w, 200, map[string]any{
		"status": "ok",
		"catalog": map[string]any{
			"diseases":     diseases,
			"pest_details": details,
			"treatments":   treatments,
		},
		"classifier": s.classifier != nil,
	})
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, refdata.NewValidationError("invalid request body: %v", err))
		return
	}
	var req struct {
		Predictions []pestinfer.DiseasePrediction `json:"predictions"`
		Season      string                        `json:"season"`
	}
	if err := decodeJSONBytes(blob, &req); err != nil {
		writeError(w, refdata.NewValidationError("invalid JSON: %v", err))
		return
	}
	if len(req.Predictions) == 0 {
		writeError(w, refdata.NewValidationError("predictions are required"))
		return
	}

	envelope, err := s.advisor.Assess(req.Predictions, pestinfer.Season(strings.TrimSpace(req.Season)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, envelope)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.classifier == nil {
		writeError(w, &refdata.Error{
			Code:    refdata.CodeUnavailable,
			Message: "no classifier configured",
			Status:  503,
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, refdata.NewValidationError("image upload required in field 'file': %v", err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, refdata.NewValidationError("reading upload: %v", err))
		return
	}
	if len(image) == 0 {
		writeError(w, refdata.NewValidationError("uploaded image is empty"))
		return
	}

	predictions, err := s.classifier.Classify(r.Context(), image, header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}

	season := pestinfer.Season(strings.TrimSpace(r.URL.Query().Get("season")))
	envelope, err := s.advisor.Assess(predictions, season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, envelope)
}

func (s *Server) handleListDiseases(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, 200, map[string]any{"diseases": s.catalog.Diseases()})
}

func (s *Server) handleDisease(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	disease := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/catalog/diseases/"), "/")
	if disease == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	profile, ok := s.catalog.TreatmentProfile(disease)
	if !ok {
		writeError(w, refdata.NewNotFoundError("unknown disease %q", disease))
		return
	}
	writeJSON(w, 200, map[string]any{
		"disease":           disease,
		"pests":             s.catalog.PestsFor(disease),
		"treatment_profile": profile,
	})
}
