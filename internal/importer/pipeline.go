package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/halebuild/takeoff-engine/internal/coerce"
	"github.com/halebuild/takeoff-engine/internal/config"
	"github.com/halebuild/takeoff-engine/internal/domain"
	"github.com/halebuild/takeoff-engine/internal/formula"
	"github.com/halebuild/takeoff-engine/internal/logger"
	"github.com/halebuild/takeoff-engine/internal/parser"
	"github.com/halebuild/takeoff-engine/internal/repository"
	"github.com/halebuild/takeoff-engine/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RowError records one failed row (Row == 0 means a file-level failure)
type RowError struct {
	File    string `json:"file"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// FileResult summarizes one imported file
type FileResult struct {
	File          string     `json:"file"`
	RowsProcessed int        `json:"rows_processed"`
	RowsFailed    int        `json:"rows_failed"`
	Errors        []RowError `json:"errors,omitempty"`
}

// ImportSummary summarizes one import run across all files
type ImportSummary struct {
	RunID          uuid.UUID  `json:"run_id"`
	FilesProcessed int        `json:"files_processed"`
	FilesFailed    int        `json:"files_failed"`
	RowsProcessed  int        `json:"rows_processed"`
	RowsFailed     int        `json:"rows_failed"`
	Errors         []RowError `json:"errors,omitempty"`
}

// Importer drives the spreadsheet import pipeline. Each file runs inside one
// database transaction with a savepoint per row, so a bad row rolls back alone
// while the rest of the file commits. Files are processed sequentially; the
// resolver cache carries committed resolutions across files within a run.
type Importer struct {
	db     *gorm.DB
	source storage.Source
	cfg    config.ImportConfig
	logger *zap.Logger
}

// New creates an importer reading from the given source
func New(db *gorm.DB, source storage.Source, cfg config.ImportConfig, logger *zap.Logger) *Importer {
	return &Importer{
		db:     db,
		source: source,
		cfg:    cfg,
		logger: logger,
	}
}

// ImportDirectory imports every spreadsheet the source lists. File-level
// failures are recorded in the summary and do not stop the run.
func (i *Importer) ImportDirectory(ctx context.Context) (*ImportSummary, error) {
	summary := &ImportSummary{RunID: uuid.New()}
	log := i.logger.With(zap.String("run_id", summary.RunID.String()))

	names, err := i.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}

	log.Info("Starting import run", zap.Int("files", len(names)))

	cache := NewResolverCache()
	for _, name := range names {
		result, err := i.importFile(ctx, name, cache, log)
		if err != nil {
			summary.FilesFailed++
			summary.Errors = append(summary.Errors, RowError{File: name, Message: err.Error()})
			log.Error("File import failed",
				zap.String("file", name),
				zap.Error(err),
			)
			// The file transaction rolled back; cached ids from it are void
			cache.clear()
			continue
		}

		summary.FilesProcessed++
		summary.RowsProcessed += result.RowsProcessed
		summary.RowsFailed += result.RowsFailed
		summary.Errors = append(summary.Errors, result.Errors...)
	}

	log.Info("Import run finished",
		zap.Int("files_processed", summary.FilesProcessed),
		zap.Int("files_failed", summary.FilesFailed),
		zap.Int("rows_processed", summary.RowsProcessed),
		zap.Int("rows_failed", summary.RowsFailed),
	)
	return summary, nil
}

// ImportFile imports a single spreadsheet by name
func (i *Importer) ImportFile(ctx context.Context, name string) (*FileResult, error) {
	return i.importFile(ctx, name, NewResolverCache(), i.logger)
}

func (i *Importer) importFile(ctx context.Context, name string, cache *ResolverCache, log *zap.Logger) (*FileResult, error) {
	info, err := parser.ParseFilename(name)
	if err != nil {
		return nil, err
	}

	rc, err := i.source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	wb, err := parser.OpenWorkbook(rc)
	if err != nil {
		return nil, err
	}

	log = logger.WithFile(log, name)
	log.Info("Importing file",
		zap.String("plan", info.PlanName),
		zap.String("elevation", info.ElevationName),
		zap.String("foundation", info.Foundation),
		zap.String("option", info.OptionName),
		zap.Int("rows", len(wb.Rows())),
	)

	result := &FileResult{File: name}

	// Formula variables come from the first data row; the dimensional columns
	// repeat on every line of an export, so the first row carries the full set
	vars := formulaVars(wb.Rows()[0])

	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run := &fileRun{
			resolver: NewEntityResolver(tx, cache),
			pricing:  repository.NewVendorPricingRepository(tx),
			takeoffs: repository.NewTakeoffRepository(tx),
			info:     info,
			vars:     vars,
			log:      log,
		}

		for _, row := range wb.Rows() {
			cache.beginRow()
			jobResolved := run.jobID != 0
			sp := fmt.Sprintf("sp_row_%d", row.Index)
			if err := tx.SavePoint(sp).Error; err != nil {
				return fmt.Errorf("failed to create savepoint for row %d: %w", row.Index, err)
			}

			if err := i.processRow(ctx, run, row); err != nil {
				result.RowsFailed++
				result.Errors = append(result.Errors, RowError{
					File:    name,
					Row:     row.Index,
					Message: err.Error(),
				})
				log.Warn("Row failed, rolling back to savepoint",
					zap.Int("row", row.Index),
					zap.Error(err),
				)
				if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
					return fmt.Errorf("failed to roll back row %d: %w", row.Index, rbErr)
				}
				cache.rollbackRow()
				// A job resolved during the failed row was rolled back with it
				if !jobResolved {
					run.jobID = 0
				}
				continue
			}

			result.RowsProcessed++
			cache.commitRow()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("File imported",
		zap.Int("rows_processed", result.RowsProcessed),
		zap.Int("rows_failed", result.RowsFailed),
	)
	return result, nil
}

// fileRun holds the per-file state shared by all rows of one transaction
type fileRun struct {
	resolver *EntityResolver
	pricing  *repository.VendorPricingRepository
	takeoffs *repository.TakeoffRepository
	info     *parser.FileInfo
	vars     map[string]float64
	log      *zap.Logger

	// jobID is resolved once, on the first row that reaches job resolution
	jobID int64
}

func (i *Importer) processRow(ctx context.Context, run *fileRun, row parser.Row) error {
	itemName := coerce.String(row.Get("Item"))
	if itemName == nil {
		return domain.ErrMissingItem
	}
	takeoffIDSource := coerce.Int(row.Get("TakeoffID"))
	if takeoffIDSource == nil {
		return domain.ErrMissingTakeoffID
	}

	// Row values override the filename context when present
	planName := strOr(coerce.String(row.Get("Plan")), run.info.PlanName)
	elevationName := strOr(coerce.String(row.Get("Elevation")), run.info.ElevationName)
	foundation := strOr(coerce.String(row.Get("Foundation")), run.info.Foundation)
	optionName := strOr(coerce.String(row.Get("OptionName")), run.info.OptionName)
	optionType := strOr(coerce.String(row.Get("OptionType")), run.info.OptionName)

	var divisionID, communityID *int64
	if name := coerce.String(row.Get("Division")); name != nil {
		id, err := run.resolver.ResolveDivision(ctx, *name)
		if err != nil {
			return fmt.Errorf("division: %w", err)
		}
		divisionID = &id
	}
	if name := coerce.String(row.Get("Community")); name != nil && divisionID != nil {
		id, err := run.resolver.ResolveCommunity(ctx, *divisionID, *name)
		if err != nil {
			return fmt.Errorf("community: %w", err)
		}
		communityID = &id
	}

	planID, err := run.resolver.ResolvePlan(ctx, planName,
		coerce.String(row.Get("Architect")),
		coerce.String(row.Get("Engineer")))
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	fullName := coerce.String(row.Get("PlanFullName"))
	if fullName == nil {
		fn := fmt.Sprintf("%s %s %s", planName, elevationName, foundation)
		fullName = &fn
	}
	elevationID, err := run.resolver.ResolveElevation(ctx, &domain.PlanElevation{
		PlanID:        planID,
		ElevationName: elevationName,
		Foundation:    foundation,
		PlanFullName:  fullName,

		HeatedSFInsideStuds:     coerce.Int(row.Get("HeatedSF(InsideStuds)")),
		HeatedSFOutsideStuds:    coerce.Int(row.Get("HeatedSF(OutsideStuds)")),
		HeatedSFOutsideVeneer:   coerce.Int(row.Get("HeatedSF(OutsideVeneer)")),
		UnheatedSFInsideStuds:   coerce.Int(row.Get("UnHeatedSF(InsideStuds)")),
		UnheatedSFOutsideStuds:  coerce.Int(row.Get("UnHeatedSF(OutsideStuds)")),
		UnheatedSFOutsideVeneer: coerce.Int(row.Get("UnHeatedSF(OutsideVeneer)")),
		TotalSFInsideStuds:      coerce.Int(row.Get("TotalSF(InsideStuds)")),
		TotalSFOutsideStuds:     coerce.Int(row.Get("TotalSF(OutsideStuds)")),
		TotalSFOutsideVeneer:    coerce.Int(row.Get("TotalSF(OutsideVeneer)")),

		StairCount:       coerce.Int(row.Get("StairCount")),
		BedroomCount:     coerce.Int(row.Get("Beds")),
		BathroomCount:    coerce.Float(row.Get("Baths")),
		VersionNumber:    coerce.String(row.Get("VersionNumber")),
		VersionDate:      coerce.Date(row.Get("VersionDate")),
		IsCurrentVersion: coerce.Bool(row.Get("IsCurrentVersion")),
	})
	if err != nil {
		return fmt.Errorf("plan elevation: %w", err)
	}

	optionID, err := run.resolver.ResolveOption(ctx, &domain.PlanOption{
		PlanElevationID:   elevationID,
		OptionName:        optionName,
		OptionType:        &optionType,
		OptionDescription: coerce.String(row.Get("OptionDescription")),
		BedroomCount:      coerce.Int(row.Get("Beds")),
		BathroomCount:     coerce.Float(row.Get("Baths")),

		HeatedSFInsideStuds:     coerce.Int(row.Get("HeatedSF(InsideStuds)")),
		HeatedSFOutsideStuds:    coerce.Int(row.Get("HeatedSF(OutsideStuds)")),
		HeatedSFOutsideVeneer:   coerce.Int(row.Get("HeatedSF(OutsideVeneer)")),
		UnheatedSFInsideStuds:   coerce.Int(row.Get("UnHeatedSF(InsideStuds)")),
		UnheatedSFOutsideStuds:  coerce.Int(row.Get("UnHeatedSF(OutsideStuds)")),
		UnheatedSFOutsideVeneer: coerce.Int(row.Get("UnHeatedSF(OutsideVeneer)")),
		TotalSFInsideStuds:      coerce.Int(row.Get("TotalSF(InsideStuds)")),
		TotalSFOutsideStuds:     coerce.Int(row.Get("TotalSF(OutsideStuds)")),
		TotalSFOutsideVeneer:    coerce.Int(row.Get("TotalSF(OutsideVeneer)")),
	})
	if err != nil {
		return fmt.Errorf("plan option: %w", err)
	}

	// One template job per file, resolved on the first row that gets this far
	if run.jobID == 0 {
		jobName := strOr(coerce.String(row.Get("JobName")),
			fmt.Sprintf("%s %s %s %s Template", planName, elevationName, foundation, optionName))
		jobID, err := run.resolver.ResolveJob(ctx, &domain.Job{
			JobName:      jobName,
			PlanOptionID: optionID,
			IsTemplate:   true,
			JobNumber:    coerce.String(row.Get("JobNumber")),
			LotNumber:    coerce.String(row.Get("LotNumber")),
			CustomerName: coerce.String(row.Get("CustomerName")),
			DivisionID:   divisionID,
			CommunityID:  communityID,
		})
		if err != nil {
			return fmt.Errorf("job: %w", err)
		}
		run.jobID = jobID
	}

	var costCodeID *int64
	if groupCode := coerce.String(row.Get("CostGroup")); groupCode != nil {
		groupID, err := run.resolver.ResolveCostGroup(ctx, *groupCode, coerce.String(row.Get("CostGroupName")))
		if err != nil {
			return fmt.Errorf("cost group: %w", err)
		}
		if code := coerce.String(row.Get("CostCodeNumber")); code != nil {
			id, err := run.resolver.ResolveCostCode(ctx, groupID, *code, coerce.String(row.Get("CostCodeDescription")))
			if err != nil {
				return fmt.Errorf("cost code: %w", err)
			}
			costCodeID = &id
		}
	}

	var vendorID *int64
	if name := coerce.String(row.Get("Vendor")); name != nil {
		id, err := run.resolver.ResolveVendor(ctx, *name)
		if err != nil {
			return fmt.Errorf("vendor: %w", err)
		}
		vendorID = &id
	}

	uom := coerce.String(row.Get("UoM"))
	itemID, formulaText, err := run.resolver.ResolveItem(ctx, &domain.Item{
		ItemName:       *itemName,
		CostCodeID:     costCodeID,
		QtyType:        coerce.String(row.Get("QtyType")),
		DefaultUnit:    uom,
		AttributeLevel: coerce.String(row.Get("AttributeLevel")),
		Model:          coerce.String(row.Get("Model")),
		QtyFormula:     coerce.String(row.Get("QTYFormula")),
		TakeoffType:    coerce.String(row.Get("TakeoffType")),
	})
	if err != nil {
		return fmt.Errorf("item: %w", err)
	}

	productID, err := run.resolver.ResolveProduct(ctx, &domain.Product{
		ItemID:             itemID,
		ProductDescription: strOr(coerce.String(row.Get("ItemDescription")), *itemName),
		Model:              coerce.String(row.Get("Model")),
		Brand:              coerce.String(row.Get("Brand")),
		Style:              coerce.String(row.Get("Style")),
		SKU:                coerce.String(row.Get("SKU")),
	})
	if err != nil {
		return fmt.Errorf("product: %w", err)
	}

	quantity := coerce.Float(row.Get("QTY"))
	quantitySource := "Excel"
	if formulaText != nil {
		if computed, evalErr := formula.Evaluate(*formulaText, run.vars); evalErr != nil {
			run.log.Warn("Formula evaluation failed, falling back to spreadsheet quantity",
				zap.Int("row", row.Index),
				zap.String("item", *itemName),
				zap.String("formula", *formulaText),
				zap.Error(evalErr),
			)
		} else {
			quantity = &computed
			quantitySource = "Formula: " + *formulaText
		}
	}

	unitPrice := coerce.Float(row.Get("Price"))
	if vendorID != nil && unitPrice != nil {
		_, err := run.pricing.UpsertPrice(ctx, repository.PriceUpdate{
			VendorID:      *vendorID,
			ProductID:     productID,
			Price:         *unitPrice,
			UnitOfMeasure: uom,
			PriceType:     &i.cfg.PriceType,
			CreatedBy:     &i.cfg.CreatedBy,
		})
		if err != nil {
			return fmt.Errorf("vendor pricing: %w", err)
		}
	}

	extendedPrice := coerce.Float(row.Get("ExtendedPrice"))
	if extendedPrice == nil && quantity != nil && unitPrice != nil {
		ep := *quantity * *unitPrice
		extendedPrice = &ep
	}

	_, err = run.takeoffs.Upsert(ctx, &domain.TakeoffLine{
		TakeoffIDSource: int64Ptr(takeoffIDSource),
		JobID:           run.jobID,
		ProductID:       productID,
		VendorID:        vendorID,
		Quantity:        quantity,
		QuantitySource:  &quantitySource,
		UnitPrice:       unitPrice,
		PriceFactor:     coerce.Float(row.Get("Factor")),
		ExtendedPrice:   extendedPrice,
		UnitOfMeasure:   uom,
		JobNumber:       coerce.String(row.Get("JobNumber")),
		LotNumber:       coerce.String(row.Get("LotNumber")),
		CustomerName:    coerce.String(row.Get("CustomerName")),
		Room:            coerce.String(row.Get("Room")),
		RoomType:        coerce.String(row.Get("RoomType")),
		RoomSqFt:        coerce.Float(row.Get("RoomSqFt")),
		FloorLevel:      coerce.String(row.Get("FloorLevel")),
		IsHeated:        coerce.Bool(row.Get("IsHeated")),
		SpecName:        coerce.String(row.Get("SpecName")),
		SpecDescription: coerce.String(row.Get("SpecDescription")),
		SpecLevel:       coerce.String(row.Get("SpecLevel")),
		SelectedTotal:   coerce.Float(row.Get("SelectedTotal")),
		Notes:           coerce.String(row.Get("Notes")),
	})
	if err != nil {
		return fmt.Errorf("takeoff line: %w", err)
	}
	return nil
}

// formulaVarColumns maps spreadsheet headers to the variable names quantity
// formulas reference
var formulaVarColumns = map[string]string{
	"HeatedSF(InsideStuds)":     "heated_sf_inside_studs",
	"HeatedSF(OutsideStuds)":    "heated_sf_outside_studs",
	"HeatedSF(OutsideVeneer)":   "heated_sf_outside_veneer",
	"UnHeatedSF(InsideStuds)":   "unheated_sf_inside_studs",
	"UnHeatedSF(OutsideStuds)":  "unheated_sf_outside_studs",
	"UnHeatedSF(OutsideVeneer)": "unheated_sf_outside_veneer",
	"TotalSF(InsideStuds)":      "total_sf_inside_studs",
	"TotalSF(OutsideStuds)":     "total_sf_outside_studs",
	"TotalSF(OutsideVeneer)":    "total_sf_outside_veneer",
	"StairCount":                "stair_count",
	"Beds":                      "bedroom_count",
	"Baths":                     "bathroom_count",
}

func formulaVars(row parser.Row) map[string]float64 {
	vars := make(map[string]float64, len(formulaVarColumns))
	for header, name := range formulaVarColumns {
		if v := coerce.Float(row.Get(header)); v != nil {
			vars[name] = *v
		}
	}
	return vars
}

func strOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func int64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}
