package builder

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// configSourceTag identifies data files written by this library.
const configSourceTag = "go-guihelper"

// LoadData reads a JSON data file. Failures are logged and reported as
// nil rather than raised; a missing data file on a best-effort prefill
// is routine, not exceptional.
func LoadData(path string) map[string]any {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("builder: load data from %s: %v", path, err)
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("builder: decode data from %s: %v", path, err)
		return nil
	}
	return data
}

// SaveData writes a data tree as indented JSON, reporting success as a
// boolean with the failure logged.
func SaveData(path string, data map[string]any) bool {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("builder: encode data for %s: %v", path, err)
		return false
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Printf("builder: save data to %s: %v", path, err)
		return false
	}
	return true
}

// SaveDataFiltered is SaveData with empty values (nil or blank strings)
// dropped from the top level first.
func SaveDataFiltered(path string, data map[string]any) bool {
	filtered := make(map[string]any, len(data))
	for key, value := range data {
		if EmptyValue(value) {
			continue
		}
		filtered[key] = value
	}
	return SaveData(path, filtered)
}

// LoadDataInto loads a data file and applies it to the form,
// best-effort. It reports whether the file was read at all.
func (f *Form) LoadDataInto(path string) bool {
	data := LoadData(path)
	if data == nil {
		return false
	}
	f.SetData(data)
	return true
}

// SaveDataFile persists the current nested form data.
func (f *Form) SaveDataFile(path string) bool {
	return SaveData(path, f.Data())
}

// DataWithMetadata returns the nested form data plus a "_metadata"
// sibling describing the configuration that produced it.
func (f *Form) DataWithMetadata() map[string]any {
	data := f.Data()
	data["_metadata"] = map[string]any{
		"config_source":   configSourceTag,
		"window_title":    f.cfg.Window.Title,
		"layout":          string(f.cfg.Layout),
		"field_count":     len(f.cfg.AllFields()),
		"required_fields": f.cfg.RequiredFieldNames(),
		"generated_at":    time.Now().Format(time.RFC3339),
	}
	return data
}

// SaveDataFileWithMetadata persists the form data in the metadata
// variant.
func (f *Form) SaveDataFileWithMetadata(path string) bool {
	return SaveData(path, f.DataWithMetadata())
}
