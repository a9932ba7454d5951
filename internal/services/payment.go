package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/trangvt/claria/internal/models"
)

// ResponseCodeSuccess is the gateway's "transaction approved" code.
const ResponseCodeSuccess = "00"

var (
	ErrInvalidSignature = errors.New("payment signature mismatch")
	ErrMissingTxnRef    = errors.New("payment return is missing the transaction reference")
)

// PaymentGateway builds signed redirect URLs for the hosted payment page and
// verifies the signed query string the gateway sends back. The contract is
// opaque: amount in minor units (x100), vnp_* parameter names, HMAC-SHA512
// signature over the sorted encoded query.
type PaymentGateway struct {
	payURL     string
	tmnCode    string
	hashSecret []byte
	returnURL  string
}

type PaymentResult struct {
	TxnRef        string `json:"txn_ref"`
	Amount        int64  `json:"amount"`
	ResponseCode  string `json:"response_code"`
	BankCode      string `json:"bank_code,omitempty"`
	TransactionNo string `json:"transaction_no,omitempty"`
	OrderInfo     string `json:"order_info,omitempty"`
	Success       bool   `json:"success"`
}

func NewPaymentGateway(payURL string, tmnCode string, hashSecret string, returnURL string) *PaymentGateway {
	return &PaymentGateway{
		payURL:     payURL,
		tmnCode:    tmnCode,
		hashSecret: []byte(hashSecret),
		returnURL:  returnURL,
	}
}

// BuildPaymentURL returns the redirect URL for an order.
func (gateway *PaymentGateway) BuildPaymentURL(order models.Order, clientIP string, now time.Time) (string, error) {
	if order.Amount <= 0 {
		return "", fmt.Errorf("invalid order amount %d", order.Amount)
	}

	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", gateway.tmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(order.Amount*100, 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", order.TxnRef)
	params.Set("vnp_OrderInfo", order.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", gateway.returnURL)
	params.Set("vnp_IpAddr", clientIP)
	params.Set("vnp_CreateDate", now.Format("20060102150405"))

	signed := gateway.signedQuery(params)
	return gateway.payURL + "?" + signed, nil
}

// VerifyReturn validates the signature on the gateway's return query and
// extracts the transaction outcome. Response code "00" denotes success.
func (gateway *PaymentGateway) VerifyReturn(query url.Values) (PaymentResult, error) {
	received := query.Get("vnp_SecureHash")
	if received == "" {
		return PaymentResult{}, ErrInvalidSignature
	}

	params := url.Values{}
	for key, values := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" || len(values) == 0 {
			continue
		}
		params.Set(key, values[0])
	}

	expected := gateway.signature(params)
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return PaymentResult{}, ErrInvalidSignature
	}

	result := PaymentResult{
		TxnRef:        params.Get("vnp_TxnRef"),
		ResponseCode:  params.Get("vnp_ResponseCode"),
		BankCode:      params.Get("vnp_BankCode"),
		TransactionNo: params.Get("vnp_TransactionNo"),
		OrderInfo:     params.Get("vnp_OrderInfo"),
	}
	if result.TxnRef == "" {
		return PaymentResult{}, ErrMissingTxnRef
	}

	if raw := params.Get("vnp_Amount"); raw != "" {
		minor, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("parse return amount: %w", err)
		}
		result.Amount = minor / 100
	}

	result.Success = result.ResponseCode == ResponseCodeSuccess
	return result, nil
}

func (gateway *PaymentGateway) signedQuery(params url.Values) string {
	encoded := canonicalQuery(params)
	return encoded + "&vnp_SecureHash=" + gateway.signatureOf(encoded)
}

func (gateway *PaymentGateway) signature(params url.Values) string {
	return gateway.signatureOf(canonicalQuery(params))
}

func (gateway *PaymentGateway) signatureOf(encoded string) string {
	mac := hmac.New(sha512.New, gateway.hashSecret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}

// canonicalQuery encodes parameters sorted by key, the byte order the gateway
// signs over.
func canonicalQuery(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, key := range keys {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(url.QueryEscape(key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(params.Get(key)))
	}
	return builder.String()
}
