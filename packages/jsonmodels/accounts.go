package jsonmodels

// Mosaic is an amount of a mosaic owned by an account.
type Mosaic struct {
	ID     string `json:"id"`
	Amount uint64 `json:"amount,string"`
}

// Account is the JSON model of the state of an account.
type Account struct {
	Version         uint16   `json:"version"`
	Address         string   `json:"address"`
	AddressHeight   uint64   `json:"addressHeight,string"`
	PublicKey       string   `json:"publicKey"`
	PublicKeyHeight uint64   `json:"publicKeyHeight,string"`
	AccountType     uint8    `json:"accountType"`
	Mosaics         []Mosaic `json:"mosaics"`
}

// AccountInfo wraps an Account in a paginated response.
type AccountInfo struct {
	ID      string  `json:"id"`
	Account Account `json:"account"`
}

// AccountsResponse is the JSON model of the /accounts endpoint.
type AccountsResponse struct {
	Data       []AccountInfo `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
