package chat_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventoryManagement/internal/chat"
	"inventoryManagement/internal/testutil"
	"inventoryManagement/repository"
)

func newDispatcher(t *testing.T, name string) (*chat.Dispatcher, *repository.ProductRepository) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	repo := repository.NewProductRepository(d, t.TempDir())
	return chat.NewDispatcher(repo), repo
}

func TestCancelWhenIdleIsIdempotent(t *testing.T) {
	disp, _ := newDispatcher(t, "chatidle")
	s := &chat.Session{}
	ctx := context.Background()

	reply := disp.Handle(ctx, s, "cancel")
	assert.Equal(t, "There is no operation in progress to cancel.", reply)
	assert.Equal(t, chat.StateIdle, s.State)

	// Repeating changes nothing.
	reply = disp.Handle(ctx, s, "CANCEL ")
	assert.Equal(t, "There is no operation in progress to cancel.", reply)
	assert.Equal(t, chat.StateIdle, s.State)
}

func TestCancelAbortsFlow(t *testing.T) {
	disp, repo := newDispatcher(t, "chatcancel")
	s := &chat.Session{}
	ctx := context.Background()

	disp.Handle(ctx, s, "add product")
	disp.Handle(ctx, s, "Serum")
	require.Equal(t, chat.StateAddPrice, s.State)

	reply := disp.Handle(ctx, s, "cancel")
	assert.Contains(t, reply, "Operation cancelled")
	assert.Equal(t, chat.StateIdle, s.State)
	assert.Equal(t, chat.Draft{}, s.Draft)

	// Nothing was persisted.
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPriceParsingAcceptsBothSeparators(t *testing.T) {
	for i, input := range []string{"49.90", "49,90"} {
		disp, _ := newDispatcher(t, fmt.Sprintf("chatprice%d", i))
		s := &chat.Session{}
		ctx := context.Background()

		disp.Handle(ctx, s, "add product")
		disp.Handle(ctx, s, "Lip Gloss")
		disp.Handle(ctx, s, input)
		require.Equal(t, chat.StateAddQty, s.State, "input %q", input)
		assert.Equal(t, 49.90, s.Draft.Price)
	}
}

func TestInvalidPriceRetainsState(t *testing.T) {
	disp, _ := newDispatcher(t, "chatbadprice")
	s := &chat.Session{}
	ctx := context.Background()

	disp.Handle(ctx, s, "add product")
	disp.Handle(ctx, s, "Lip Gloss")
	reply := disp.Handle(ctx, s, "abc")
	assert.Contains(t, reply, "Invalid price")
	assert.Equal(t, chat.StateAddPrice, s.State)
}

func TestUnknownBrandRetainsState(t *testing.T) {
	disp, _ := newDispatcher(t, "chatbrand")
	s := &chat.Session{}
	ctx := context.Background()

	disp.Handle(ctx, s, "add product")
	disp.Handle(ctx, s, "Lip Gloss")
	disp.Handle(ctx, s, "19.90")
	disp.Handle(ctx, s, "10")
	require.Equal(t, chat.StateAddBrand, s.State)

	reply := disp.Handle(ctx, s, "acme")
	assert.Contains(t, reply, "Brand not recognized")
	assert.Equal(t, chat.StateAddBrand, s.State)
	assert.Empty(t, s.Draft.Brand)
}

func TestAddProductEndToEnd(t *testing.T) {
	disp, repo := newDispatcher(t, "chatadd")
	s := &chat.Session{}
	ctx := context.Background()

	assert.Contains(t, disp.Handle(ctx, s, "add product"), "What is its name?")
	disp.Handle(ctx, s, "Lip Gloss")
	disp.Handle(ctx, s, "19.90")
	disp.Handle(ctx, s, "10")
	disp.Handle(ctx, s, "eudora")
	disp.Handle(ctx, s, "make")
	disp.Handle(ctx, s, "boca")
	reply := disp.Handle(ctx, s, "no")

	assert.Contains(t, reply, "added successfully")
	assert.Equal(t, chat.StateIdle, s.State)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	p := list[0]
	assert.Equal(t, "Lip Gloss", p.Name)
	assert.Equal(t, 19.90, p.Price)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, "Eudora", p.Brand)
	assert.Equal(t, "Make", p.Style)
	assert.Equal(t, "Boca", p.Type)
	assert.False(t, p.Sold)
	assert.Nil(t, p.ExpirationDate)
	assert.Nil(t, p.Photo)
}

func TestAddProductWithExpirationDate(t *testing.T) {
	disp, repo := newDispatcher(t, "chatexp")
	s := &chat.Session{}
	ctx := context.Background()

	disp.Handle(ctx, s, "add product")
	disp.Handle(ctx, s, "Serum")
	disp.Handle(ctx, s, "89,90")
	disp.Handle(ctx, s, "2")
	disp.Handle(ctx, s, "natura")
	disp.Handle(ctx, s, "skincare")
	disp.Handle(ctx, s, "rosto")

	// Bad date retains the step.
	reply := disp.Handle(ctx, s, "31-12-2026")
	assert.Contains(t, reply, "Invalid date format")
	require.Equal(t, chat.StateAddExpiration, s.State)

	disp.Handle(ctx, s, "31/12/2026")
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ExpirationDate)
	assert.Equal(t, "2026-12-31", *list[0].ExpirationDate)
}

func TestSellGuidedFlow(t *testing.T) {
	disp, repo := newDispatcher(t, "chatsell")
	s := &chat.Session{}
	ctx := context.Background()
	p := testutil.SeedProduct(t, repo, "Colônia", 3, 2)

	reply := disp.Handle(ctx, s, "sell")
	assert.Contains(t, reply, "What is the ID")
	require.Equal(t, chat.StateSellID, s.State)

	// Unknown id retains the state.
	reply = disp.Handle(ctx, s, "9999")
	assert.Contains(t, reply, "not found")
	require.Equal(t, chat.StateSellID, s.State)

	// Non-numeric input retains the state.
	reply = disp.Handle(ctx, s, "abc")
	assert.Contains(t, reply, "Invalid ID")
	require.Equal(t, chat.StateSellID, s.State)

	reply = disp.Handle(ctx, s, "1")
	assert.Contains(t, reply, "Remaining stock: 1")
	assert.Equal(t, chat.StateIdle, s.State)

	g, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Quantity)
	assert.True(t, g.Sold)
}

func TestSellOneShotAndExhaustion(t *testing.T) {
	disp, repo := newDispatcher(t, "chatoneshot")
	s := &chat.Session{}
	ctx := context.Background()
	p := testutil.SeedProduct(t, repo, "Sabonete", 9.90, 1)

	// "sell <id>" sells directly from idle.
	reply := disp.Handle(ctx, s, "sell 1")
	assert.Contains(t, reply, "now out of stock")
	assert.Equal(t, chat.StateIdle, s.State)

	g, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Quantity)

	// Selling again reports out of stock and performs no further mutation.
	reply = disp.Handle(ctx, s, "sell 1")
	assert.Contains(t, reply, "already out of stock")
	assert.Equal(t, chat.StateIdle, s.State)
	g, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Quantity)
}

func TestStockListingAndBrandFilter(t *testing.T) {
	disp, repo := newDispatcher(t, "chatstock")
	s := &chat.Session{}
	ctx := context.Background()

	reply := disp.Handle(ctx, s, "stock")
	assert.Equal(t, "No products registered in stock.", reply)

	testutil.SeedProduct(t, repo, "Essência", 59.90, 4)

	reply = disp.Handle(ctx, s, "stock")
	assert.Contains(t, reply, "Essência (ID: 1)")
	assert.Contains(t, reply, "R$ 59.90")
	assert.Contains(t, reply, "Brand: Natura")

	// Mixed-case brand filter matches the title-cased vocabulary.
	reply = disp.Handle(ctx, s, "stock NatUrA")
	assert.Contains(t, reply, "Products from Natura in stock:")
	assert.Contains(t, reply, "Style: Perfumaria")

	reply = disp.Handle(ctx, s, "stock eudora")
	assert.Equal(t, "No products found for brand Eudora.", reply)
}

func TestUnknownCommand(t *testing.T) {
	disp, _ := newDispatcher(t, "chatunknown")
	s := &chat.Session{}
	ctx := context.Background()

	reply := disp.Handle(ctx, s, "make me a sandwich")
	assert.Contains(t, reply, "did not understand")
	assert.Equal(t, chat.StateIdle, s.State)

	reply = disp.Handle(ctx, s, "help")
	assert.Contains(t, reply, "add product")
	assert.Contains(t, reply, "stock <brand>")
}
