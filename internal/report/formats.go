package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Veraticus/aishield/pkg/logger"
	"github.com/Veraticus/aishield/pkg/pathutil"
)

// Format renders an audit report to a file.
type Format interface {
	// Generate writes the report to outputPath.
	Generate(report *AuditReport, outputPath string) error
	// Name returns the format identifier (e.g., "json", "pdf").
	Name() string
	// Description returns a human-readable description of the format.
	Description() string
}

// FormatFactory creates instances of report formats.
type FormatFactory func(log logger.Logger) (Format, error)

var (
	formatRegistry = make(map[string]FormatFactory)
	registryMutex  sync.RWMutex
)

// RegisterFormat registers a new report format factory.
func RegisterFormat(name string, factory FormatFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("report: RegisterFormat factory is nil for format %q", name))
	}
	if _, dup := formatRegistry[name]; dup {
		panic(fmt.Sprintf("report: RegisterFormat called twice for format %q", name))
	}
	formatRegistry[name] = factory
}

// GetFormat creates an instance of the specified report format.
func GetFormat(name string, log logger.Logger) (Format, error) {
	registryMutex.RLock()
	factory, exists := formatRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}

	return factory(log)
}

// ListFormats returns the registered format names, sorted.
func ListFormats() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	formats := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// OutputPath names the file a format writes for base inside dir.
func OutputPath(dir, base, format string) (string, error) {
	return pathutil.JoinAndValidate(dir, base+"."+format)
}

// writeFile creates outputPath and its parent directory and streams render into it.
func writeFile(outputPath string, render func(w io.Writer) error) (err error) {
	if mkErr := os.MkdirAll(filepath.Dir(outputPath), 0o750); mkErr != nil {
		return fmt.Errorf("creating output directory: %w", mkErr)
	}

	validPath, err := pathutil.ValidateOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	file, err := os.Create(validPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	return render(file)
}

// Register built-in formats during package initialization.
func init() {
	RegisterFormat("json", func(log logger.Logger) (Format, error) {
		return &jsonFormat{logger: log}, nil
	})
	RegisterFormat("yaml", func(log logger.Logger) (Format, error) {
		return &yamlFormat{logger: log}, nil
	})
	RegisterFormat("html", func(log logger.Logger) (Format, error) {
		return NewHTMLGenerator(log)
	})
	RegisterFormat("pdf", func(log logger.Logger) (Format, error) {
		return NewPDFGenerator(log), nil
	})
}
