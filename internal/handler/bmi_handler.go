package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
	"github.com/yusufkecer/eatsmart-backend/internal/service"
)

// BMIHandler serves the standalone calculator. It needs no account.
type BMIHandler struct{}

func NewBMIHandler() *BMIHandler {
	return &BMIHandler{}
}

type bmiRequest struct {
	Height json.RawMessage `json:"height"`
	Weight json.RawMessage `json:"weight"`
}

func (h *BMIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := bmi.Parse(fieldText(req.Height), fieldText(req.Weight))
	if err != nil {
		writeBMIError(w, err, func() {
			writeError(w, http.StatusBadRequest, "invalid input")
		})
		return
	}

	writeJSON(w, http.StatusOK, service.Summarize(res))
}

func (h *BMIHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bmi.Categories())
}

// fieldText accepts a JSON string or number and returns it as form text.
// null, a missing field, and other JSON types come back as text that
// bmi.Parse rejects.
func fieldText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "invalid"
		}
		return text
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "invalid"
	}
	return n.String()
}
