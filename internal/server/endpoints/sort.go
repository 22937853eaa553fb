package endpoints

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/api"
	"github.com/jsklabs/labelsort/internal/labels"
	"github.com/jsklabs/labelsort/internal/pdftext"
	"github.com/jsklabs/labelsort/internal/svcctx"
)

// maxUploadSize caps label PDF uploads at 100MB.
const maxUploadSize = 100 << 20

// SortSummary is the JSON summary of a sort run.
type SortSummary struct {
	Files       []labels.Entry `json:"files"`
	TotalLabels int            `json:"total_labels"`
	TotalGroups int            `json:"total_groups"`
}

// SortLabelsEndpoint handles POST /api/labels/sort.
type SortLabelsEndpoint struct{}

var _ api.Endpoint = (*SortLabelsEndpoint)(nil)

func (e *SortLabelsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/labels/sort", e.handler
}

func (e *SortLabelsEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Sort a shipping label PDF into per-group PDFs
//	@Tags		labels
//	@Accept		multipart/form-data
//	@Produce	application/zip
//	@Param		file	formData	file	true	"Multi-page label PDF"
//	@Param		summary	query		bool	false	"Return a JSON summary instead of the zip"
//	@Success	200	{file}		binary
//	@Failure	400	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/api/labels/sort [post]
func (e *SortLabelsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	logger := svcctx.LoggerFrom(r.Context())
	if logger == nil {
		logger = slog.Default()
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	runID := uuid.New().String()
	logger.Info("sorting uploaded labels",
		"run_id", runID,
		"filename", header.Filename,
		"size", len(data))

	doc, err := pdftext.Open(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid PDF: %v", err))
		return
	}

	var rules []labels.CarrierRule
	if cfgMgr := svcctx.ConfigFrom(r.Context()); cfgMgr != nil {
		if path := cfgMgr.Get().Sort.RulesFile; path != "" {
			rules, err = labels.LoadRules(path)
			if err != nil {
				logger.Warn("ignoring carrier rules file", "path", path, "error", err)
				rules = nil
			}
		}
	}

	result, err := labels.Sort(doc, labels.Options{Rules: rules, Logger: logger})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("sort failed: %v", err))
		return
	}

	logger.Info("sort complete",
		"run_id", runID,
		"pages", result.TotalPages,
		"groups", len(result.Entries))

	if r.URL.Query().Get("summary") == "true" {
		writeJSON(w, http.StatusOK, SortSummary{
			Files:       result.Entries,
			TotalLabels: result.TotalPages,
			TotalGroups: len(result.Entries),
		})
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "sorted_labels_"+runID[:8]+".zip"))
	w.Header().Set("X-Total-Labels", strconv.Itoa(result.TotalPages))
	w.Header().Set("X-Label-Groups", strconv.Itoa(len(result.Entries)))
	if err := result.WriteZip(w); err != nil {
		logger.Error("failed to stream zip", "run_id", runID, "error", err)
	}
}

func (e *SortLabelsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		outputPath string
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "sort [pdf-file]",
		Short: "Upload a label PDF to the server for sorting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			if summary {
				var resp SortSummary
				if err := client.UploadFileJSON(cmd.Context(), "/api/labels/sort?summary=true", "file", args[0], &resp); err != nil {
					return err
				}
				return api.Output(resp)
			}

			if outputPath == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				outputPath = base + "_sorted.zip"
			}
			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputPath, err)
			}
			defer out.Close()

			if err := client.UploadFile(cmd.Context(), "/api/labels/sort", "file", args[0], out); err != nil {
				os.Remove(outputPath)
				return err
			}
			fmt.Printf("Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output zip path")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a JSON summary instead of downloading the zip")
	return cmd
}
