// Package chat implements the rule-based conversational command interface.
// The dispatcher is a finite state machine: given the current session and one
// line of input it produces a reply, with persistence calls only on terminal
// steps, so it can be driven by any front end (CLI REPL, HTTP endpoint).
package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inventoryManagement/internal/catalog"
	"inventoryManagement/models"
	"inventoryManagement/repository"
)

// State identifies the current step of a multi-turn flow.
type State int

const (
	StateIdle State = iota
	StateAddName
	StateAddPrice
	StateAddQty
	StateAddBrand
	StateAddStyle
	StateAddType
	StateAddExpiration
	StateSellID
)

// Draft holds the fields collected so far by the add-product flow.
type Draft struct {
	Name       string
	Price      float64
	Quantity   int
	Brand      string
	Style      string
	Type       string
	Expiration *string // ISO-8601 date or nil
}

// Session is the per-user conversation state. The zero value is a fresh idle
// session.
type Session struct {
	State State
	Draft Draft
}

func (s *Session) reset() {
	s.State = StateIdle
	s.Draft = Draft{}
}

// ProductStore is the subset of the product repository the dispatcher needs.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	RecordSale(ctx context.Context, id int64, units int) error
}

// Dispatcher interprets free-text commands against a session.
type Dispatcher struct {
	products ProductStore
}

func NewDispatcher(products ProductStore) *Dispatcher {
	return &Dispatcher{products: products}
}

// Greeting is the opening line front ends show before the first command.
const Greeting = "Hello! I am the stock assistant. Type 'help' to see the available commands."

const helpText = `Available commands:
- add product: start the guided product registration.
- stock: list all products.
- stock <brand>: filter the stock by brand (e.g. stock eudora).
- sell <id>: sell one unit of a product, or type sell to be guided.
- cancel: cancel the current operation.
- help: show this list.`

// Handle processes one line of input, mutating the session, and returns the
// reply text. Malformed input never aborts the conversation; the same state
// is retained and the user may retry. Only a persistence failure at the final
// commit step resets the flow.
func (d *Dispatcher) Handle(ctx context.Context, s *Session, raw string) string {
	input := strings.ToLower(strings.TrimSpace(raw))

	// Global override, valid in every state.
	if input == "cancel" {
		if s.State != StateIdle {
			s.reset()
			return "Operation cancelled. Type 'help' to see the commands."
		}
		return "There is no operation in progress to cancel."
	}

	switch s.State {
	case StateAddName:
		if input == "" {
			return "The name cannot be empty. What is the product name?"
		}
		s.Draft.Name = catalog.Normalize(input)
		s.State = StateAddPrice
		return "What is the price (e.g. 49.90)?"

	case StateAddPrice:
		price, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
		if err != nil || price < 0 {
			return "Invalid price format. Please enter the price (e.g. 49.90)."
		}
		s.Draft.Price = price
		s.State = StateAddQty
		return "How many units are in stock (whole number)?"

	case StateAddQty:
		qty, err := strconv.Atoi(input)
		if err != nil || qty < 0 {
			return "Invalid quantity. Please enter a non-negative whole number."
		}
		s.Draft.Quantity = qty
		s.State = StateAddBrand
		return fmt.Sprintf("Which brand is it? Options: %s", catalog.Sample(catalog.Brands, 5))

	case StateAddBrand:
		v := catalog.Normalize(input)
		if !catalog.ValidBrand(v) {
			return "Brand not recognized. Try again or type 'cancel'."
		}
		s.Draft.Brand = v
		s.State = StateAddStyle
		return fmt.Sprintf("What is the style? Options: %s", catalog.Sample(catalog.Styles, 5))

	case StateAddStyle:
		v := catalog.Normalize(input)
		if !catalog.ValidStyle(v) {
			return "Style not recognized. Try again or type 'cancel'."
		}
		s.Draft.Style = v
		s.State = StateAddType
		return fmt.Sprintf("What is the type? Options: %s", catalog.Sample(catalog.Types, 5))

	case StateAddType:
		v := catalog.Normalize(input)
		if !catalog.ValidType(v) {
			return "Type not recognized. Try again or type 'cancel'."
		}
		s.Draft.Type = v
		s.State = StateAddExpiration
		return "What is the expiration date? (DD/MM/YYYY or 'no')"

	case StateAddExpiration:
		var expiration *string
		if input != "no" {
			t, err := time.Parse("02/01/2006", input)
			if err != nil {
				return "Invalid date format. Use DD/MM/YYYY or type 'no'."
			}
			iso := t.Format("2006-01-02")
			expiration = &iso
		}
		s.Draft.Expiration = expiration
		return d.commitAdd(ctx, s)

	case StateSellID:
		return d.sellByID(ctx, s, input)

	case StateIdle:
		return d.dispatchIdle(ctx, s, input)
	}

	// Defensive catch-all for state/input combinations not covered above.
	return "Unexpected response. Please follow the prompts or type 'cancel' to abort."
}

// dispatchIdle handles single-turn commands and flow starts.
func (d *Dispatcher) dispatchIdle(ctx context.Context, s *Session, input string) string {
	switch {
	case input == "help":
		return helpText

	case input == "add product":
		s.Draft = Draft{}
		s.State = StateAddName
		return "Ok, let's add a product. What is its name?"

	case input == "sell" || strings.HasPrefix(input, "sell "):
		s.Draft = Draft{}
		s.State = StateSellID
		if parts := strings.Fields(input); len(parts) == 2 {
			// One-shot sell-by-id: re-dispatch the token immediately.
			return d.Handle(ctx, s, parts[1])
		}
		return "Sure. What is the ID of the product you sold?"

	case input == "stock":
		return d.listStock(ctx)

	case strings.HasPrefix(input, "stock "):
		brand := catalog.Normalize(strings.TrimPrefix(input, "stock "))
		return d.listStockByBrand(ctx, brand)
	}

	return "Sorry, I did not understand that command. Type 'help' to see the available commands."
}

// commitAdd persists the collected draft and resets the session. A store
// failure is relayed verbatim; the user must restart the flow.
func (d *Dispatcher) commitAdd(ctx context.Context, s *Session) string {
	p := &models.Product{
		Name:           s.Draft.Name,
		Price:          s.Draft.Price,
		Quantity:       s.Draft.Quantity,
		Brand:          s.Draft.Brand,
		Style:          s.Draft.Style,
		Type:           s.Draft.Type,
		ExpirationDate: s.Draft.Expiration,
		// Photos are never set in the conversational flow.
	}
	name := s.Draft.Name
	s.reset()
	if _, err := d.products.Create(ctx, p); err != nil {
		return fmt.Sprintf("Could not add the product: %v. Try again or type 'help'.", err)
	}
	return fmt.Sprintf("Product '%s' added successfully! Anything else? Type 'help'.", name)
}

func (d *Dispatcher) sellByID(ctx context.Context, s *Session, input string) string {
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return "Invalid ID. Please enter only the product ID number or 'cancel'."
	}
	products, err := d.products.List(ctx)
	if err != nil {
		s.reset()
		return fmt.Sprintf("Could not look up the stock: %v. Try again or type 'help'.", err)
	}
	var match *models.Product
	for i := range products {
		if products[i].ID == id {
			match = &products[i]
			break
		}
	}
	switch {
	case match == nil:
		return "Product ID not found. Please enter a valid ID or 'cancel'."
	case match.Quantity == 0:
		s.reset()
		return fmt.Sprintf("Product (ID: %d) is already out of stock.", id)
	}

	s.reset()
	if err := d.products.RecordSale(ctx, id, 1); err != nil {
		// Another session may have taken the last unit between the
		// snapshot above and the guarded decrement.
		if errors.Is(err, repository.ErrInsufficientStock) {
			return fmt.Sprintf("Product (ID: %d) is already out of stock.", id)
		}
		return fmt.Sprintf("Could not record the sale: %v. Try again or type 'help'.", err)
	}
	if match.Quantity == 1 {
		return fmt.Sprintf("Product %s (ID: %d) sold and now out of stock.", match.Name, id)
	}
	return fmt.Sprintf("1 unit of %s (ID: %d) sold. Remaining stock: %d.", match.Name, id, match.Quantity-1)
}

func (d *Dispatcher) listStock(ctx context.Context) string {
	products, err := d.products.List(ctx)
	if err != nil {
		return fmt.Sprintf("Could not look up the stock: %v.", err)
	}
	if len(products) == 0 {
		return "No products registered in stock."
	}
	var b strings.Builder
	b.WriteString("Products in stock:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (ID: %d) - R$ %.2f, Qty: %d, Brand: %s\n", p.Name, p.ID, p.Price, p.Quantity, p.Brand)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) listStockByBrand(ctx context.Context, brand string) string {
	products, err := d.products.List(ctx)
	if err != nil {
		return fmt.Sprintf("Could not look up the stock: %v.", err)
	}
	var filtered []models.Product
	for _, p := range products {
		if p.Brand == brand {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return fmt.Sprintf("No products found for brand %s.", brand)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Products from %s in stock:\n", brand)
	for _, p := range filtered {
		fmt.Fprintf(&b, "- %s (ID: %d) - R$ %.2f, Qty: %d, Style: %s\n", p.Name, p.ID, p.Price, p.Quantity, p.Style)
	}
	return strings.TrimRight(b.String(), "\n")
}
