package services

import "github.com/dmitrijs2005/listkeeper/internal/server/models"

func strPtr(s string) *string { return &s }

// Seed fixtures. Passwords are development-only values.
var seedUsers = []CreateUserInput{
	{
		FullName: "Alice Admin",
		Email:    "alice@listkeeper.dev",
		Password: "admin123",
		Roles:    []models.Role{models.RoleAdmin, models.RoleSuperUser},
	},
	{
		FullName: "Bob Berry",
		Email:    "bob@listkeeper.dev",
		Password: "secret1",
	},
	{
		FullName: "Carol Crumb",
		Email:    "carol@listkeeper.dev",
		Password: "secret2",
	},
}

var seedItems = []CreateItemInput{
	{Name: "Milk", QuantityUnits: strPtr("l"), Category: strPtr("dairy")},
	{Name: "Eggs", QuantityUnits: strPtr("dozen"), Category: strPtr("dairy")},
	{Name: "Bread", Category: strPtr("bakery")},
	{Name: "Rice", QuantityUnits: strPtr("kg"), Category: strPtr("pantry")},
	{Name: "Olive oil", QuantityUnits: strPtr("ml"), Category: strPtr("pantry")},
	{Name: "Tomatoes", QuantityUnits: strPtr("kg"), Category: strPtr("produce")},
	{Name: "Bananas", QuantityUnits: strPtr("kg"), Category: strPtr("produce")},
	{Name: "Coffee beans", QuantityUnits: strPtr("g"), Category: strPtr("pantry")},
	{Name: "Dish soap", Category: strPtr("household")},
	{Name: "Paper towels", Category: strPtr("household")},
}

var seedLists = []CreateListInput{
	{Name: "Weekly groceries"},
	{Name: "Party supplies"},
	{Name: "Pantry restock"},
}

var seedPairings = []struct {
	Quantity  int
	Completed bool
}{
	{Quantity: 2, Completed: false},
	{Quantity: 1, Completed: true},
	{Quantity: 3, Completed: false},
	{Quantity: 1, Completed: false},
}
