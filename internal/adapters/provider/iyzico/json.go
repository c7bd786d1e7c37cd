package iyzico

// ThreeDSInitializeRequest is iyzico's /payment/3dsecure/initialize body.
type ThreeDSInitializeRequest struct {
	Locale         string      `json:"locale"`
	ConversationID string      `json:"conversationId"`
	Price          string      `json:"price"`
	PaidPrice      string      `json:"paidPrice"`
	Currency       string      `json:"currency"`
	Installment    int         `json:"installment"`
	BasketID       string      `json:"basketId"`
	PaymentChannel string      `json:"paymentChannel"`
	PaymentGroup   string      `json:"paymentGroup"`
	CallbackURL    string      `json:"callbackUrl"`
	PaymentCard    PaymentCard `json:"paymentCard"`
	Buyer          Buyer       `json:"buyer"`
}

// PaymentCard is iyzico's card sub-object.
type PaymentCard struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpireMonth    string `json:"expireMonth"`
	ExpireYear     string `json:"expireYear"`
	Cvc            string `json:"cvc"`
}

// Buyer is iyzico's minimal required buyer sub-object.
type Buyer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IP        string `json:"ip"`
	Name      string `json:"name"`
	SurName   string `json:"surname"`
}

// ThreeDSInitializeResponse carries the ready-to-render 3-D Secure HTML,
// already base64-encoded by iyzico itself.
type ThreeDSInitializeResponse struct {
	Status              string `json:"status"`
	ConversationID      string `json:"conversationId"`
	ThreeDSHtmlContent  string `json:"threeDSHtmlContent"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// ThreeDSAuthRequest is iyzico's /payment/3dsecure/auth body, completing a
// callback that reported success.
type ThreeDSAuthRequest struct {
	Locale          string `json:"locale"`
	ConversationID  string `json:"conversationId"`
	PaymentID       string `json:"paymentId"`
	ConversationData string `json:"conversationData"`
}

// ThreeDSAuthResponse is iyzico's completed-payment response.
type ThreeDSAuthResponse struct {
	Status         string `json:"status"`
	PaymentID      string `json:"paymentId"`
	PaymentStatus  string `json:"paymentStatus"`
	AuthCode       string `json:"authCode"`
	HostReference  string `json:"hostReference"`
	ErrorCode      string `json:"errorCode"`
	ErrorMessage   string `json:"errorMessage"`
}
