package jsonmodels

// NodeInfoResponse is the JSON model of the /node/info endpoint.
type NodeInfoResponse struct {
	Version                   uint64 `json:"version"`
	PublicKey                 string `json:"publicKey"`
	NodePublicKey             string `json:"nodePublicKey,omitempty"`
	NetworkGenerationHashSeed string `json:"networkGenerationHashSeed"`
	Roles                     uint32 `json:"roles"`
	Port                      uint16 `json:"port"`
	NetworkIdentifier         uint8  `json:"networkIdentifier"`
	Host                      string `json:"host"`
	FriendlyName              string `json:"friendlyName"`
}

// NetworkPropertiesResponse is the JSON model of the /network/properties endpoint.
type NetworkPropertiesResponse struct {
	Network NetworkProperties `json:"network"`
	Chain   ChainProperties   `json:"chain"`
}

// NetworkProperties contains the network section of the node configuration.
type NetworkProperties struct {
	Identifier             string `json:"identifier"`
	NemesisSignerPublicKey string `json:"nemesisSignerPublicKey"`
	GenerationHashSeed     string `json:"generationHashSeed"`
	// EpochAdjustment is a server duration like "1615853185s".
	EpochAdjustment string `json:"epochAdjustment"`
}

// ChainProperties contains the chain section of the node configuration. Durations are server durations like "30s".
type ChainProperties struct {
	CurrencyMosaicID          string `json:"currencyMosaicId,omitempty"`
	HarvestingMosaicID        string `json:"harvestingMosaicId,omitempty"`
	BlockGenerationTargetTime string `json:"blockGenerationTargetTime,omitempty"`
	MaxTransactionLifetime    string `json:"maxTransactionLifetime,omitempty"`
}

// AnnounceRequest carries a signed transaction to the /transactions endpoint.
type AnnounceRequest struct {
	Payload string `json:"payload"`
}

// AnnounceResponse is the answer of the /transactions endpoint.
type AnnounceResponse struct {
	Message string `json:"message"`
}

// TransactionStatusResponse is the JSON model of the /transactionStatus/{hash} endpoint.
type TransactionStatusResponse struct {
	Group    string `json:"group"`
	Code     string `json:"code,omitempty"`
	Hash     string `json:"hash"`
	Deadline uint64 `json:"deadline,string"`
	Height   uint64 `json:"height,string,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
