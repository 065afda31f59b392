package datasets

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/synthgen/synthctl/api-types/misc/rfctime"
)

// Dataset is an uploaded tabular file.
type Dataset struct {
	Id               int              `json:"id"`
	OriginalFilename string           `json:"original_filename"`
	Filename         string           `json:"filename,omitempty"`
	FileSize         int64            `json:"file_size"`
	NRows            int              `json:"n_rows"`
	NColumns         int              `json:"n_columns"`
	Columns          []string         `json:"columns,omitempty"`
	IsValid          *bool            `json:"is_valid,omitempty"`
	CreatedAt        *rfctime.RFC3339 `json:"created_at,omitempty"`
}

func (d Dataset) Equal(o Dataset) bool {
	return d.Id == o.Id &&
		d.OriginalFilename == o.OriginalFilename &&
		d.FileSize == o.FileSize &&
		d.NRows == o.NRows &&
		d.NColumns == o.NColumns
}

// List is a list of datasets.
//
// The server answers a bare array, {"datasets": [...]} or {"data": [...]}
// depending on its version. All of them are accepted.
type List []Dataset

var ErrUnknownListShape = errors.New("unknown shape of dataset list")

func (l *List) UnmarshalJSON(b []byte) error {
	var bare []Dataset
	if err := json.Unmarshal(b, &bare); err == nil {
		*l = bare
		return nil
	}

	var enveloped struct {
		Datasets []Dataset `json:"datasets"`
		Data     []Dataset `json:"data"`
	}
	if err := json.Unmarshal(b, &enveloped); err != nil {
		return err
	}
	switch {
	case enveloped.Datasets != nil:
		*l = enveloped.Datasets
	case enveloped.Data != nil:
		*l = enveloped.Data
	default:
		return ErrUnknownListShape
	}
	return nil
}

// UploadResponse is the answer of POST /datasets/upload.
type UploadResponse struct {
	Message          string         `json:"message"`
	FileId           int            `json:"file_id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         int64          `json:"file_size"`
	NRows            int            `json:"n_rows"`
	NColumns         int            `json:"n_columns"`
	Columns          []string       `json:"columns"`
	ColumnInfo       map[string]any `json:"column_info,omitempty"`
	HasNulls         bool           `json:"has_nulls"`
	TotalNulls       int            `json:"total_nulls"`
}

// FilenameCheck is the answer of GET /datasets/check-filename/:name.
type FilenameCheck struct {
	Exists    bool   `json:"exists"`
	DatasetId *int   `json:"dataset_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Update struct {
	OriginalFilename *string `json:"original_filename,omitempty"`
	Description      *string `json:"description,omitempty"`
}

type UpdateResponse struct {
	Message string  `json:"message"`
	Dataset Dataset `json:"dataset"`
}

// Extensions the server can read.
var AcceptedExtensions = []string{".csv", ".xls", ".xlsx"}

// Accepts reports whether the file name has one of AcceptedExtensions.
func Accepts(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// ContentType returns the MIME type for the file name.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
