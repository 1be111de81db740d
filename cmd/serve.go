package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"mozartcheck/constants"
	"mozartcheck/db"
	"mozartcheck/eval"
	"mozartcheck/key"
	"mozartcheck/model"
	"mozartcheck/score"
	"mozartcheck/verdict"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analyzer over HTTP",
	Long:  `Serves the analyzer over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleAnalyze analyzes a MIDI file posted as the raw request body. An
// optional ?filename= query names the piece in the response and keys
// the metadata lookup.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		fmt.Println("Could not read request body: " + err.Error())
		writeError(w, "Could not read request body", 400)
		return
	}
	if len(body) == 0 {
		writeError(w, "Request body must be a MIDI file", 400)
		return
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "upload.mid"
	}

	s, err := score.ReadScore(bytes.NewReader(body))
	if err != nil {
		writeError(w, err.Error(), 422)
		return
	}

	est := key.EstimateKey(s)
	v := verdict.VerifyPiece(s, eval.StrategyDirect)

	res := model.Analysis{
		Filename:   filename,
		Key:        est.Name(),
		Measures:   len(s.Measures),
		Valid:      v.Valid,
		Violations: v.Violations,
	}
	if len(s.TimeSignatures) > 0 {
		res.TimeSignature = s.TimeSignatures[0].String()
	}

	if metas, err := db.GetPieceMetadatas([]string{filename}); err == nil {
		if m, ok := metas[filename]; ok {
			res.Title = m.Title
			res.Catalog = m.Catalog
		}
	}

	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(constants.GetServeAddr(), handler))
}
