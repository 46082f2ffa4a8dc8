package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

var ErrMissingColumns = errors.New("csv is missing required columns")

// Columns the bulk sheet may carry. name and base_price are mandatory;
// the rest default to empty/zero.
var (
	requiredColumns = []string{"name", "base_price"}
	knownColumns    = []string{"name", "description", "category", "brand", "base_price", "stock", "unit", "image_url"}
)

type BulkRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// BulkReport is a partial-success summary: valid rows are created even
// when others fail.
type BulkReport struct {
	Created int            `json:"created"`
	Failed  int            `json:"failed"`
	Errors  []BulkRowError `json:"errors"`
}

// BulkUploadService turns an admin-supplied CSV sheet into products for
// one company. Column order is header-driven, not positional.
type BulkUploadService struct {
	products  repository.ProductRepository
	companies repository.CompanyRepository
	log       zerolog.Logger
}

func NewBulkUploadService(products repository.ProductRepository, companies repository.CompanyRepository, log zerolog.Logger) *BulkUploadService {
	return &BulkUploadService{products: products, companies: companies, log: log}
}

func (s *BulkUploadService) Upload(ctx context.Context, companyID string, r io.Reader) (*BulkReport, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	report := &BulkReport{}
	line := 1 // header consumed

	for {
		record, errRead := reader.Read()
		if errors.Is(errRead, io.EOF) {
			break
		}
		line++
		if errRead != nil {
			report.Failed++
			report.Errors = append(report.Errors, BulkRowError{Line: line, Reason: errRead.Error()})
			continue
		}

		product, errRow := buildProduct(companyID, columns, record)
		if errRow != nil {
			report.Failed++
			report.Errors = append(report.Errors, BulkRowError{Line: line, Reason: errRow.Error()})
			continue
		}

		if errCreate := s.products.Create(ctx, product); errCreate != nil {
			s.log.Error().Err(errCreate).Int("line", line).Msg("bulk product create failed")
			report.Failed++
			report.Errors = append(report.Errors, BulkRowError{Line: line, Reason: "failed to save product"})
			continue
		}

		report.Created++
	}

	s.log.Info().
		Str("company_id", companyID).
		Int("created", report.Created).
		Int("failed", report.Failed).
		Msg("bulk upload finished")

	return report, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, known := range knownColumns {
			if name == known {
				columns[name] = i
				break
			}
		}
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return columns, nil
}

func buildProduct(companyID string, columns map[string]int, record []string) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return nil, errors.New("name is required")
	}

	basePrice, err := strconv.ParseFloat(field("base_price"), 64)
	if err != nil || basePrice <= 0 {
		return nil, errors.New("base_price must be a positive number")
	}

	stock := 0
	if raw := field("stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return nil, errors.New("stock must be a non-negative integer")
		}
	}

	var images []string
	if url := field("image_url"); url != "" {
		images = []string{url}
	}

	return &domain.Product{
		CompanyID:   companyID,
		Name:        name,
		Description: field("description"),
		Category:    field("category"),
		Brand:       field("brand"),
		Images:      images,
		BasePrice:   basePrice,
		Variants: []domain.Variant{
			{
				ID:    uuid.NewString(),
				Name:  "standard",
				Price: basePrice,
				Stock: stock,
				Unit:  field("unit"),
			},
		},
		IsActive: true,
	}, nil
}
