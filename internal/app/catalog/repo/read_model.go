package repo

import (
	"context"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
	"github.com/light-bringer/cartsync-service/internal/models/m_product"
	"github.com/light-bringer/cartsync-service/internal/pkg/query"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ReadModelImpl implements the catalog ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new catalog ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// GetProductByID retrieves a product DTO by ID.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.AllColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to read product")
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, errors.Wrap(err, "failed to parse product")
	}

	return dataToDTO(&data)
}

// ListProducts retrieves a paginated list of products with filtering.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	if filter == nil {
		filter = &contracts.ListFilter{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.Limit
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	builder := query.From(m_product.TableName).
		Select(m_product.AllColumns()...)

	if filter.Category != "" {
		builder = builder.Where(query.Eq(m_product.Category, filter.Category))
	}

	sortCol, sortDir := sortOrder(filter)

	listStmt := builder.
		OrderBy(sortCol, sortDir).
		Limit(int64(pageSize)).
		Offset(int64((page - 1) * pageSize)).
		Build()

	products, err := rm.queryProducts(ctx, listStmt)
	if err != nil {
		return nil, err
	}

	total, err := rm.countRows(ctx, builder.Count().Build())
	if err != nil {
		return nil, err
	}

	return &contracts.ListResult{
		Products:   products,
		Page:       page,
		TotalCount: total,
	}, nil
}

// ListCategories retrieves the distinct categories, alphabetically.
func (rm *ReadModelImpl) ListCategories(ctx context.Context) ([]*contracts.CategoryDTO, error) {
	stmt := spanner.Statement{
		SQL: "SELECT DISTINCT category FROM products ORDER BY category",
	}

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	categories := make([]*contracts.CategoryDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate categories")
		}

		var category string
		if err := row.Columns(&category); err != nil {
			return nil, errors.Wrap(err, "failed to parse category")
		}
		categories = append(categories, &contracts.CategoryDTO{Category: category})
	}

	return categories, nil
}

// SearchProducts retrieves products matching the query text in name or
// description, case-insensitively. A blank query returns no results.
func (rm *ReadModelImpl) SearchProducts(ctx context.Context, queryText string) ([]*contracts.ProductDTO, error) {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return []*contracts.ProductDTO{}, nil
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.AllColumns()...).
		Where(query.Or(
			query.Like(m_product.Name, queryText),
			query.Like(m_product.Description, queryText),
		)).
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(maxPageSize).
		Build()

	return rm.queryProducts(ctx, stmt)
}

// RelatedProducts retrieves up to limit products sharing the category,
// excluding excludeID. When the category yields fewer matches, the shortfall
// is topped up with the most recent products from other categories.
func (rm *ReadModelImpl) RelatedProducts(ctx context.Context, category string, excludeID int64, limit int) ([]*contracts.ProductDTO, error) {
	if limit <= 0 {
		limit = 4
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.AllColumns()...).
		Where(query.Eq(m_product.Category, category)).
		Where(query.Neq(m_product.ProductID, excludeID)).
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(int64(limit)).
		Build()

	related, err := rm.queryProducts(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(related) >= limit {
		return related, nil
	}

	seen := make(map[int64]bool, len(related)+1)
	seen[excludeID] = true
	for _, dto := range related {
		seen[dto.ProductID] = true
	}

	fillStmt := query.From(m_product.TableName).
		Select(m_product.AllColumns()...).
		Where(query.Neq(m_product.ProductID, excludeID)).
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(int64(limit + len(related))).
		Build()

	recent, err := rm.queryProducts(ctx, fillStmt)
	if err != nil {
		return nil, err
	}

	for _, dto := range recent {
		if len(related) >= limit {
			break
		}
		if seen[dto.ProductID] {
			continue
		}
		seen[dto.ProductID] = true
		related = append(related, dto)
	}

	return related, nil
}

// queryProducts executes a product statement and converts rows to DTOs.
func (rm *ReadModelImpl) queryProducts(ctx context.Context, stmt spanner.Statement) ([]*contracts.ProductDTO, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate products")
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, errors.Wrap(err, "failed to parse product")
		}

		dto, err := dataToDTO(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, dto)
	}

	return products, nil
}

// countRows executes a COUNT(*) statement.
func (rm *ReadModelImpl) countRows(ctx context.Context, stmt spanner.Statement) (int64, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, errors.Wrap(err, "failed to parse count")
	}
	return count, nil
}

// sortOrder maps a ListFilter's sort options onto a known column. Unknown
// columns fall back to newest-first.
func sortOrder(filter *contracts.ListFilter) (string, query.Direction) {
	dir := query.Desc
	if strings.EqualFold(filter.Order, contracts.OrderAsc) {
		dir = query.Asc
	}

	switch filter.SortBy {
	case "name":
		return m_product.Name, dir
	case "price":
		// Prices are stored as fractions; the numerator alone misorders rows
		// with different denominators.
		return m_product.PriceNumerator + " / " + m_product.PriceDenominator, dir
	case "created_at":
		return m_product.CreatedAt, dir
	default:
		return m_product.CreatedAt, query.Desc
	}
}

// dataToDTO converts database Data to a ProductDTO.
func dataToDTO(data *m_product.Data) (*contracts.ProductDTO, error) {
	price, err := domain.NewMoney(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, errors.Wrap(err, "invalid product price")
	}

	dto := &contracts.ProductDTO{
		ProductID: data.ProductID,
		Name:      data.Name,
		Category:  data.Category,
		Price:     price.Float64(),
		Sizes:     data.Sizes,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	if data.Description.Valid {
		dto.Description = data.Description.StringVal
	}
	if data.Image.Valid {
		dto.Image = data.Image.StringVal
	}
	if data.Discount.Valid {
		discount := data.Discount.Int64
		dto.Discount = &discount
	}

	return dto, nil
}
