package domain

// CartItem is one product-plus-quantity line in the cart.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

// CartState holds the full cart. Total is always recomputed from the items,
// never adjusted incrementally.
type CartState struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// ProductSummary is the slice of a product needed to add it to the cart.
type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type CommandType string

const (
	CommandAddItem        CommandType = "ADD_ITEM"
	CommandUpdateQuantity CommandType = "UPDATE_QUANTITY"
	CommandRemoveItem     CommandType = "REMOVE_ITEM"
	CommandClearCart      CommandType = "CLEAR_CART"
)

// CartCommand is a tagged mutation of the cart. Only the fields relevant to
// its Type are read.
type CartCommand struct {
	Type      CommandType
	Product   ProductSummary // ADD_ITEM
	ProductID string         // UPDATE_QUANTITY, REMOVE_ITEM
	Quantity  int            // UPDATE_QUANTITY
}

func AddItem(p ProductSummary) CartCommand {
	return CartCommand{Type: CommandAddItem, Product: p}
}

func UpdateQuantity(productID string, quantity int) CartCommand {
	return CartCommand{Type: CommandUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func RemoveItem(productID string) CartCommand {
	return CartCommand{Type: CommandRemoveItem, ProductID: productID}
}

func ClearCart() CartCommand {
	return CartCommand{Type: CommandClearCart}
}

// Apply is the pure cart transition. It never mutates the input state and
// always returns a state whose Total matches its items.
func Apply(state CartState, cmd CartCommand) CartState {
	items := make([]CartItem, len(state.Items))
	copy(items, state.Items)

	switch cmd.Type {
	case CommandAddItem:
		found := false
		for i := range items {
			if items[i].ID == cmd.Product.ID {
				// Existing item keeps its stored fields, only quantity grows.
				items[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			items = append(items, CartItem{
				ID:       cmd.Product.ID,
				Name:     cmd.Product.Name,
				Price:    cmd.Product.Price,
				Image:    cmd.Product.Image,
				Category: cmd.Product.Category,
				Quantity: 1,
			})
		}

	case CommandUpdateQuantity:
		if cmd.Quantity <= 0 {
			items = removeByID(items, cmd.ProductID)
			break
		}
		for i := range items {
			if items[i].ID == cmd.ProductID {
				items[i].Quantity = cmd.Quantity
				break
			}
		}

	case CommandRemoveItem:
		items = removeByID(items, cmd.ProductID)

	case CommandClearCart:
		items = []CartItem{}
	}

	return CartState{Items: items, Total: totalOf(items)}
}

func removeByID(items []CartItem, id string) []CartItem {
	for i, item := range items {
		if item.ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func totalOf(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count returns the number of units across all lines, for the cart badge.
func (s CartState) Count() int {
	var n int
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
