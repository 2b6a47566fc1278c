package currency

import "VexlConverter/internal/model"

// Catalog is the fixed list of extra fiat currencies a user can add, in pick-list order.
var Catalog = []model.Currency{
	{Code: "ARS", Symbol: "$", Name: "Argentine Peso"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "CZK", Symbol: "Kč", Name: "Czech Koruna"},
	{Code: "DKK", Symbol: "kr", Name: "Danish Krone"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso"},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone"},
	{Code: "PYG", Symbol: "₲", Name: "Paraguayan Guarani"},
	{Code: "PLN", Symbol: "zł", Name: "Polish Zloty"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
}

// Lookup finds a catalog entry by code.
func Lookup(code string) (model.Currency, bool) {
	for _, c := range Catalog {
		if c.Code == code {
			return c, true
		}
	}
	return model.Currency{}, false
}
