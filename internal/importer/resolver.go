package importer

import (
	"context"
	"errors"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"github.com/halebuild/takeoff-engine/internal/repository"
	"gorm.io/gorm"
)

// EntityResolver turns natural keys from spreadsheet rows into surrogate ids,
// creating missing entities on the fly. All lookups go through the run-scoped
// ResolverCache first, then through the repositories bound to the current file
// transaction. Resolution order within a row follows foreign key dependencies:
// division before community, plan before elevation before option before job,
// cost group before cost code, item before product.
type EntityResolver struct {
	cache *ResolverCache

	divisions   *repository.DivisionRepository
	communities *repository.CommunityRepository
	plans       *repository.PlanRepository
	elevations  *repository.PlanElevationRepository
	options     *repository.PlanOptionRepository
	jobs        *repository.JobRepository
	costGroups  *repository.CostGroupRepository
	costCodes   *repository.CostCodeRepository
	vendors     *repository.VendorRepository
	items       *repository.ItemRepository
	products    *repository.ProductRepository
}

// NewEntityResolver binds a resolver to one file transaction. The cache is
// run-scoped and outlives the transaction; committed resolutions stay valid
// for later files in the same run.
func NewEntityResolver(tx *gorm.DB, cache *ResolverCache) *EntityResolver {
	return &EntityResolver{
		cache:        cache,
		divisions:    repository.NewDivisionRepository(tx),
		communities:  repository.NewCommunityRepository(tx),
		plans:        repository.NewPlanRepository(tx),
		elevations:   repository.NewPlanElevationRepository(tx),
		options:      repository.NewPlanOptionRepository(tx),
		jobs:         repository.NewJobRepository(tx),
		costGroups:   repository.NewCostGroupRepository(tx),
		costCodes:    repository.NewCostCodeRepository(tx),
		vendors:     repository.NewVendorRepository(tx),
		items:       repository.NewItemRepository(tx),
		products:    repository.NewProductRepository(tx),
	}
}

func (r *EntityResolver) ResolveDivision(ctx context.Context, name string) (int64, error) {
	if id, ok := r.cache.get(kindDivision, name); ok {
		return id, nil
	}
	id, err := r.divisions.FindOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindDivision, name, id)
	return id, nil
}

func (r *EntityResolver) ResolveCommunity(ctx context.Context, divisionID int64, name string) (int64, error) {
	key := scopedKey(divisionID, name)
	if id, ok := r.cache.get(kindCommunity, key); ok {
		return id, nil
	}
	id, err := r.communities.FindOrCreate(ctx, divisionID, name)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindCommunity, key, id)
	return id, nil
}

func (r *EntityResolver) ResolvePlan(ctx context.Context, name string, architect, engineer *string) (int64, error) {
	if id, ok := r.cache.get(kindPlan, name); ok {
		return id, nil
	}
	id, err := r.plans.FindOrCreate(ctx, name, architect, engineer)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindPlan, name, id)
	return id, nil
}

func (r *EntityResolver) ResolveElevation(ctx context.Context, candidate *domain.PlanElevation) (int64, error) {
	key := scopedKey(candidate.PlanID, candidate.ElevationName+"\x1f"+candidate.Foundation)
	if id, ok := r.cache.get(kindElevation, key); ok {
		return id, nil
	}
	id, err := r.elevations.FindOrCreate(ctx, candidate)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindElevation, key, id)
	return id, nil
}

func (r *EntityResolver) ResolveOption(ctx context.Context, candidate *domain.PlanOption) (int64, error) {
	key := scopedKey(candidate.PlanElevationID, candidate.OptionName)
	if id, ok := r.cache.get(kindOption, key); ok {
		return id, nil
	}
	id, err := r.options.FindOrCreate(ctx, candidate)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindOption, key, id)
	return id, nil
}

func (r *EntityResolver) ResolveJob(ctx context.Context, candidate *domain.Job) (int64, error) {
	key := scopedKey(candidate.PlanOptionID, candidate.JobName)
	if id, ok := r.cache.get(kindJob, key); ok {
		return id, nil
	}
	id, err := r.jobs.FindOrCreate(ctx, candidate)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindJob, key, id)
	return id, nil
}

func (r *EntityResolver) ResolveCostGroup(ctx context.Context, code string, name *string) (int64, error) {
	if id, ok := r.cache.get(kindCostGroup, code); ok {
		return id, nil
	}
	id, err := r.costGroups.FindOrCreate(ctx, code, name)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindCostGroup, code, id)
	return id, nil
}

func (r *EntityResolver) ResolveCostCode(ctx context.Context, costGroupID int64, code string, description *string) (int64, error) {
	key := scopedKey(costGroupID, code)
	if id, ok := r.cache.get(kindCostCode, key); ok {
		return id, nil
	}
	id, err := r.costCodes.FindOrCreate(ctx, costGroupID, code, description)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindCostCode, key, id)
	return id, nil
}

func (r *EntityResolver) ResolveVendor(ctx context.Context, name string) (int64, error) {
	if id, ok := r.cache.get(kindVendor, name); ok {
		return id, nil
	}
	id, err := r.vendors.FindOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindVendor, name, id)
	return id, nil
}

// ResolveItem resolves an item by name and returns its id along with the
// quantity formula to evaluate for it, if any. Existing items keep their
// stored formula; the candidate's inline formula only applies to new items
// or items that had none.
func (r *EntityResolver) ResolveItem(ctx context.Context, candidate *domain.Item) (int64, *string, error) {
	if id, ok := r.cache.get(kindItem, candidate.ItemName); ok {
		return id, r.cache.itemFormula(candidate.ItemName), nil
	}

	existing, err := r.items.GetWithFormula(ctx, candidate.ItemName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, nil, err
	}

	id, err := r.items.FindOrCreate(ctx, candidate)
	if err != nil {
		return 0, nil, err
	}

	formula := repository.FormulaText(existing)
	if formula == nil {
		formula = candidate.QtyFormula
	}

	r.cache.put(kindItem, candidate.ItemName, id)
	r.cache.putItemFormula(candidate.ItemName, formula)
	return id, formula, nil
}

func (r *EntityResolver) ResolveProduct(ctx context.Context, candidate *domain.Product) (int64, error) {
	key := scopedKey(candidate.ItemID, candidate.ProductDescription)
	if id, ok := r.cache.get(kindProduct, key); ok {
		return id, nil
	}
	id, err := r.products.FindOrCreate(ctx, candidate)
	if err != nil {
		return 0, err
	}
	r.cache.put(kindProduct, key, id)
	return id, nil
}
