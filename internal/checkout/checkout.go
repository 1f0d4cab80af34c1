package checkout

// Method is how the customer pays. Card details are only collected and
// validated for MethodCard.
type Method string

const (
	MethodCard         Method = "card"
	MethodPayPal       Method = "paypal"
	MethodBankTransfer Method = "bankTransfer"
)

// Form carries the shipping and payment details for one checkout attempt.
// It is transient: never persisted, discarded after submission.
type Form struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Phone         string `json:"phone,omitempty"`
	PaymentMethod Method `json:"paymentMethod"`
	CardNumber    string `json:"cardNumber,omitempty"`
	CardExpiry    string `json:"cardExpiry,omitempty"`
	CardCVC       string `json:"cardCvc,omitempty"`
}
