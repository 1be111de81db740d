package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"mozartcheck/model"
)

func smallMelody(t *testing.T) []byte {
	t.Helper()

	s := smf.New()
	mt := s.TimeFormat.(smf.MetricTicks)
	q := mt.Ticks4th()

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(q, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(q, midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOn(0, 67, 100))
	tr.Add(q, midi.NoteOff(0, 67))
	tr.Close(0)
	s.Add(tr)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err.Error())
	}
	return buf.Bytes()
}

func TestHandleAnalyzeReturnsAnalysis(t *testing.T) {
	body := smallMelody(t)
	req := httptest.NewRequest(http.MethodPost, "/analyze?filename=triad.mid", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleAnalyze(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var analysis model.Analysis
	assert.NoError(json.Unmarshal(respBody, &analysis))
	assert.Equal("triad.mid", analysis.Filename)
	assert.True(analysis.Valid)
	assert.Empty(analysis.Violations)
	assert.Equal("4/4", analysis.TimeSignature)
}

func TestHandleAnalyzeRejectsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	HandleAnalyze(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errRes model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &errRes))
	assert.NotEmpty(errRes.Error)
}

func TestHandleAnalyzeRejectsNonMidiBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte("not midi")))
	w := httptest.NewRecorder()
	HandleAnalyze(w, req)

	resp := w.Result()

	assert.Equal(t, 422, resp.StatusCode)
}
