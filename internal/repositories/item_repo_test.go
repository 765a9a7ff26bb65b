package repositories

import (
	"context"
	"testing"
	"time"

	"shopstock/internal/common"
	"shopstock/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ItemRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       ItemRepository
	itemID     uuid.UUID
	categoryID uuid.UUID
	context    context.Context
}

func (suite *ItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewItemRepo(mock)
	suite.itemID = uuid.New()
	suite.categoryID = uuid.New()
	suite.context = context.Background()
}

func (suite *ItemRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoTestSuite))
}

func itemColumns() []string {
	return []string{"id", "category_id", "name", "quantity", "min_stock", "price", "image_url", "created_at"}
}

func joinedColumns() []string {
	return append(itemColumns(), "c_name", "c_icon")
}

func (suite *ItemRepoTestSuite) TestCreate_Success() {
	item := &models.Item{
		ID:         suite.itemID,
		CategoryID: suite.categoryID,
		Name:       "Oil filter",
		Quantity:   12,
		MinStock:   3,
	}

	suite.mock.ExpectExec(`
		INSERT INTO items \(id, category_id, name, quantity, min_stock, price, image_url, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, NOW\(\)\)
	`).WithArgs(item.ID, item.CategoryID, item.Name, item.Quantity, item.MinStock, item.Price, item.ImageURL).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, item)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ItemRepoTestSuite) TestGetByID_JoinsCategoryFields() {
	suite.mock.ExpectQuery(`
		SELECT i.id, i.category_id, i.name, i.quantity, i.min_stock, i.price, i.image_url, i.created_at,
		       c.name, c.icon
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = \$1
	`).WithArgs(suite.itemID).
		WillReturnRows(pgxmock.NewRows(joinedColumns()).
			AddRow(suite.itemID, suite.categoryID, "Oil filter", 12, 3, 0.0, (*string)(nil), time.Now(),
				stringPtr("Filters"), stringPtr("🔧")))

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Oil filter", item.Name)
	assert.Equal(suite.T(), "Filters", item.CategoryName)
	assert.Equal(suite.T(), "🔧", common.SafeString(item.CategoryIcon))
}

func (suite *ItemRepoTestSuite) TestGetByID_OrphanItemKeepsEmptyCategoryName() {
	suite.mock.ExpectQuery(`LEFT JOIN categories`).
		WithArgs(suite.itemID).
		WillReturnRows(pgxmock.NewRows(joinedColumns()).
			AddRow(suite.itemID, suite.categoryID, "Orphan", 2, 1, 0.0, (*string)(nil), time.Now(),
				(*string)(nil), (*string)(nil)))

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "", item.CategoryName)
	assert.Nil(suite.T(), item.CategoryIcon)
}

func (suite *ItemRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`LEFT JOIN categories`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.Nil(suite.T(), item)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ItemRepoTestSuite) TestUpdate_PartialLastWriteWins() {
	quantity := 7
	update := &models.ItemUpdate{Quantity: &quantity}

	suite.mock.ExpectExec(`
		UPDATE items
		SET name = COALESCE\(\$1, name\),
		    quantity = COALESCE\(\$2, quantity\),
		    min_stock = COALESCE\(\$3, min_stock\),
		    price = COALESCE\(\$4, price\),
		    image_url = COALESCE\(\$5, image_url\)
		WHERE id = \$6
	`).WithArgs(update.Name, update.Quantity, update.MinStock, update.Price, update.ImageURL, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, suite.itemID, update)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestListByCategory_OrderedByCreation() {
	first := uuid.New()
	second := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(`
		SELECT id, category_id, name, quantity, min_stock, price, image_url, created_at
		FROM items
		WHERE category_id = \$1
		ORDER BY created_at ASC
	`).WithArgs(suite.categoryID).
		WillReturnRows(pgxmock.NewRows(itemColumns()).
			AddRow(first, suite.categoryID, "a", 1, 0, 0.0, (*string)(nil), now.Add(-time.Minute)).
			AddRow(second, suite.categoryID, "b", 2, 0, 0.0, (*string)(nil), now))

	items, err := suite.repo.ListByCategory(suite.context, suite.categoryID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), first, items[0].ID)
}

func (suite *ItemRepoTestSuite) TestListByCategory_EmptyForMissingCategory() {
	suite.mock.ExpectQuery(`WHERE category_id = \$1`).
		WithArgs(suite.categoryID).
		WillReturnRows(pgxmock.NewRows(itemColumns()))

	items, err := suite.repo.ListByCategory(suite.context, suite.categoryID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), items)
}

func (suite *ItemRepoTestSuite) TestAdjustQuantity_ReturnsClampedValue() {
	suite.mock.ExpectQuery(`
		UPDATE items
		SET quantity = GREATEST\(0, quantity \+ \$1\)
		WHERE id = \$2
		RETURNING quantity
	`).WithArgs(-10, suite.itemID).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(0))

	quantity, err := suite.repo.AdjustQuantity(suite.context, suite.itemID, -10)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, quantity)
}

func (suite *ItemRepoTestSuite) TestAdjustQuantity_PositiveDelta() {
	suite.mock.ExpectQuery(`RETURNING quantity`).
		WithArgs(3, suite.itemID).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(8))

	quantity, err := suite.repo.AdjustQuantity(suite.context, suite.itemID, 3)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 8, quantity)
}

func (suite *ItemRepoTestSuite) TestAdjustQuantity_MissingItem() {
	suite.mock.ExpectQuery(`RETURNING quantity`).
		WithArgs(1, suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.AdjustQuantity(suite.context, suite.itemID, 1)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
