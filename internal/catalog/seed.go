package catalog

import "slices"

func DefaultProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Classic Blue Jeans", Brand: "Levi's", Color: "blue", Style: "casual", Price: MustMoney("89.99"), Stock: 10},
		{ID: "p2", Name: "Red Running Shoes", Brand: "Nike", Color: "red", Style: "sporty", Price: MustMoney("129.99"), Stock: 0},
		{ID: "p3", Name: "Elegant Black Dress", Brand: "Zara", Color: "black", Style: "formal", Price: MustMoney("79.99"), Stock: 3},
		{ID: "p4", Name: "Green Hoodie", Brand: "Uniqlo", Color: "green", Style: "casual", Price: MustMoney("49.99"), Stock: 8},
		{ID: "p5", Name: "White Sneakers", Brand: "Adidas", Color: "white", Style: "sporty", Price: MustMoney("89.99"), Stock: 6},
	}
}

// Coffee is a drink on the coffee menu.
type Coffee struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Sizes []string `json:"sizes"`
	Price Money    `json:"price"`
}

func (c Coffee) HasSize(size string) bool {
	return slices.Contains(c.Sizes, size)
}

func CoffeeMenu() []Coffee {
	all := []string{"small", "medium", "large"}
	return []Coffee{
		{ID: "c1", Name: "Espresso", Sizes: all, Price: MoneyFromInt(3)},
		{ID: "c2", Name: "Latte", Sizes: all, Price: MoneyFromInt(4)},
		{ID: "c3", Name: "Cappuccino", Sizes: all, Price: MustMoney("4.5")},
		{ID: "c4", Name: "Cold Brew", Sizes: []string{"medium", "large"}, Price: MoneyFromInt(4)},
	}
}

func FindCoffee(id string) (Coffee, bool) {
	for _, c := range CoffeeMenu() {
		if c.ID == id {
			return c, true
		}
	}
	return Coffee{}, false
}
