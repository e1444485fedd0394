package order

// Customer is the snapshot of the purchaser taken at order creation.
// It is copied by value into the order and later into the sale record;
// profile edits after checkout never touch it.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address Address
}

// Address is the shipping address part of the customer snapshot.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}
