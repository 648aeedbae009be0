package main

// @title POS Ledger API
// @version 1.0
// @description Retail point-of-sale ledger: items, customers, invoices and returns.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	Execute()
}
