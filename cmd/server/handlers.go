package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/poeta-go/grammar"
	"github.com/poeta-go/grammar/internal/app"
	"github.com/poeta-go/grammar/internal/metrics"
	"github.com/poeta-go/grammar/internal/reload"
)

const requestIDHeader = "X-Request-ID"

type server struct {
	holder  *reload.Holder
	metrics *metrics.Metrics
	logger  *log.Logger
}

// ---- JSON response types ------------------------------------------------

type inflectResponse struct {
	Word      string `json:"word"`
	Part      string `json:"part"`
	Form      string `json:"form"`
	Result    string `json:"result"`
	Inflected bool   `json:"inflected"`
}

type cellJSON struct {
	ID   int    `json:"id"`
	Form string `json:"form,omitempty"`
	Text string `json:"text"`
}

type paradigmResponse struct {
	Word  string     `json:"word"`
	Part  string     `json:"part"`
	Cells []cellJSON `json:"cells"`
}

type joinResponse struct {
	Kind   string `json:"kind"`
	Result string `json:"result"`
}

type formResponse struct {
	Part string `json:"part"`
	ID   int    `json:"id"`
	Form string `json:"form"`
}

type languagesResponse struct {
	Active    string   `json:"active"`
	Languages []string `json:"languages"`
}

type healthResponse struct {
	Status string `json:"status"`
	Rules  int    `json:"rules"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode error", "err", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// formKeys are the query parameters that make up a grammar.Form.
var formKeys = []string{"case", "number", "gender", "person", "infinitive", "imperative", "animate", "preposition"}

func formFromQuery(q url.Values) (grammar.Form, error) {
	kv := make(map[string]string)
	for _, k := range formKeys {
		if q.Has(k) {
			kv[k] = q.Get(k)
		}
	}
	return grammar.ParseForm(kv)
}

// wordQuery reads the part, word and tags parameters shared by the
// inflection endpoints.
func wordQuery(q url.Values) (grammar.SpeechPart, string, []string, error) {
	part, err := app.ParsePart(q.Get("part"))
	if err != nil {
		return 0, "", nil, fmt.Errorf("bad 'part' query parameter: %w", err)
	}
	word := q.Get("word")
	if word == "" {
		return 0, "", nil, errors.New("missing 'word' query parameter")
	}
	return part, word, app.ParseTags(q.Get("tags")), nil
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleInflect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	part, word, tags, err := wordQuery(q)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, err := formFromQuery(q)
	if err != nil {
		s.metrics.RecordInflection(part.String(), metrics.ResultError)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reflexive, _ := strconv.ParseBool(q.Get("reflexive"))

	out, err := app.Inflect(s.holder.Engine(), part, word, tags, reflexive, f)
	if err != nil {
		s.metrics.RecordInflection(part.String(), metrics.ResultError)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inflected := out != word
	result := metrics.ResultUnchanged
	if inflected {
		result = metrics.ResultInflected
	}
	s.metrics.RecordInflection(part.String(), result)

	desc, _ := grammar.FormatForm(f)
	s.writeJSON(w, http.StatusOK, inflectResponse{
		Word:      word,
		Part:      part.String(),
		Form:      desc,
		Result:    out,
		Inflected: inflected,
	})
}

func (s *server) handleParadigm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	part, word, tags, err := wordQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e := s.holder.Engine()
	p := e.Paradigm(part, word, tags)
	if len(p.Cells) == 0 {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no %s rule matches %q", part, word))
		return
	}
	cells := make([]cellJSON, 0, len(p.Cells))
	for _, id := range e.Table().FormIDs(part) {
		text, ok := p.Cells[id]
		if !ok {
			continue
		}
		cell := cellJSON{ID: id, Text: text}
		if f, ok := grammar.DescribeFormID(part, id); ok {
			cell.Form = grammar.MustFormatForm(f)
		}
		cells = append(cells, cell)
	}
	s.writeJSON(w, http.StatusOK, paradigmResponse{Word: p.Word, Part: part.String(), Cells: cells})
}

func (s *server) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	first, second := q.Get("first"), q.Get("second")
	if first == "" || second == "" {
		s.writeError(w, http.StatusBadRequest, "'first' and 'second' query parameters are required")
		return
	}
	e := s.holder.Engine()
	kind := q.Get("kind")
	var out string
	switch kind {
	case "", "preposition":
		kind = "preposition"
		out = e.JoinPrepositionObject(first, second)
	case "attribute":
		out = e.JoinAttributeNoun(first, second)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown join kind %q", kind))
		return
	}
	s.writeJSON(w, http.StatusOK, joinResponse{Kind: kind, Result: out})
}

// handleForm decodes an id into its features, or encodes query features
// into an id when no id is given.
func (s *server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	part, err := app.ParsePart(q.Get("part"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if q.Has("id") {
		id, err := strconv.Atoi(q.Get("id"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "'id' must be a number")
			return
		}
		f, ok := grammar.DescribeFormID(part, id)
		if !ok {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("%d is not a %s form id", id, part))
			return
		}
		s.writeJSON(w, http.StatusOK, formResponse{Part: part.String(), ID: id, Form: grammar.MustFormatForm(f)})
		return
	}

	f, err := formFromQuery(q)
	if err == nil {
		err = f.Validate(part)
	}
	if err == nil && f.Infinitive {
		err = errors.New("the infinitive has no form id")
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var id int
	switch part {
	case grammar.Noun:
		id = grammar.NounFormID(f)
	case grammar.Adjective:
		id = s.holder.Engine().Language().AdjectiveFormID(f)
	case grammar.Verb:
		id = grammar.VerbFormID(f)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s has no form ids", part))
		return
	}
	desc, err := grammar.FormatForm(f)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, formResponse{Part: part.String(), ID: id, Form: desc})
}

func (s *server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, languagesResponse{
		Active:    s.holder.Engine().Language().Code(),
		Languages: grammar.LanguageCodes(),
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Rules: s.holder.Engine().Table().Len()})
}

// ---- middleware ---------------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

var routes = map[string]bool{
	"/api/inflect": true, "/api/paradigm": true, "/api/join": true,
	"/api/form": true, "/api/languages": true, "/healthz": true,
}

// routeLabel bounds the route label to the known endpoints.
func routeLabel(path string) string {
	if routes[path] {
		return path
	}
	return "other"
}

// instrument tags every request with an id, logs it and records its
// latency.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		s.metrics.ObserveRequest(routeLabel(r.URL.Path), rec.status, elapsed)
		s.logger.Debug("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}
