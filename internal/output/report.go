package output

import (
	"os"

	"github.com/rpgo/resilience-navigator/internal/domain"
	"gopkg.in/yaml.v3"
)

// Render formats the report with the named formatter (aliases accepted).
func Render(report *domain.ProjectionReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	return f.Format(report)
}

// GenerateReport writes the report in the requested format to a timestamped
// file in dir and returns the file name. "all" writes every registered format.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range AvailableFormatterNames() {
			file, err := WriteFormatted(GetFormatterByName(name), report, dir, extensionFor(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	file, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

// SaveConfiguration writes the configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
