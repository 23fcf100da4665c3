package menu

// DefaultImage is served for menu items without their own photo.
const DefaultImage = "/static/img/pizza.png"

// Catalog is the static menu. Prices are display strings in dinars, aligned
// to the size labels.
var Catalog = []CatalogEntry{
	{
		Name:        "Margherita",
		Sizes:       []string{"25 cm", "30 cm", "35 cm"},
		Prices:      []string{"350da", "450da", "650da"},
		Ingredients: []string{"Sauce Tomate", "Mozzarella", "Herbes italiennes", "Huile d'olive"},
		Image:       DefaultImage,
	},
	{
		Name:        "Végétarienne",
		Sizes:       []string{"25 cm", "30 cm", "35 cm"},
		Prices:      []string{"350da", "450da", "650da"},
		Ingredients: []string{"Sauce Tomate", "Mozzarella", "Champignons", "Poivrons", "Oignons", "Olives"},
		Image:       DefaultImage,
	},
	{
		Name:        "3 fromages",
		Sizes:       []string{"25 cm", "30 cm", "35 cm"},
		Prices:      []string{"350da", "450da", "650da"},
		Ingredients: []string{"Mozzarella", "Gruyère", "Fromage bleu", "Crème fraîche"},
		Image:       DefaultImage,
	},
	{
		Name:        "Merguez",
		Sizes:       []string{"25 cm", "30 cm", "35 cm"},
		Prices:      []string{"400da", "500da", "700da"},
		Ingredients: []string{"Sauce Tomate", "Mozzarella", "Merguez", "Poivrons"},
		Image:       DefaultImage,
	},
	{
		Name:        "Orientale",
		Sizes:       []string{"25 cm", "30 cm", "35 cm"},
		Prices:      []string{"400da", "500da", "700da"},
		Ingredients: []string{"Sauce Tomate", "Mozzarella", "Viande hachée", "Oignons", "Olives"},
		Image:       DefaultImage,
	},
	{
		Name:        "Thon",
		Sizes:       []string{"25 cm", "30 cm", "35 cm"},
		Prices:      []string{"400da", "500da", "700da"},
		Ingredients: []string{"Sauce Tomate", "Mozzarella", "Thon", "Oignons", "Câpres"},
		Image:       DefaultImage,
	},
}
