// Package roster loads the recipient list from a CSV file with the
// columns Name, Email, City, State, Zip. State and Zip are optional.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dailybrief/internal/domain"
)

func Load(path string, log *slog.Logger) ([]domain.Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipient list: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn("Failed to close recipient list",
				"error", closeErr,
				"path", path)
		}
	}()

	recipients, err := Parse(f, log)
	if err != nil {
		return nil, fmt.Errorf("parse recipient list (path = %s): %w", path, err)
	}

	return recipients, nil
}

func Parse(r io.Reader, log *slog.Logger) ([]domain.Recipient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["email"]; !ok {
		return nil, errors.New("header is missing the Email column")
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	var recipients []domain.Recipient

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read row: %w", readErr)
		}

		recipient := domain.Recipient{
			Name:  field(row, "name"),
			Email: field(row, "email"),
			City:  field(row, "city"),
			State: StateCode(field(row, "state")),
			Zip:   field(row, "zip"),
		}

		if recipient.Email == "" {
			log.Warn("Skipping recipient without email",
				"name", recipient.Name)
			continue
		}
		if recipient.City == "" {
			log.Warn("Skipping recipient without city",
				"name", recipient.Name,
				"email", recipient.Email)
			continue
		}

		recipients = append(recipients, recipient)
	}

	return recipients, nil
}
