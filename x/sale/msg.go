package sale

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathSetSaleStartDateMsg    = "sale/set_start_date"
	pathOpenForSaleMsg         = "sale/open"
	pathSetPriceMsg            = "sale/set_price"
	pathPurchaseMsg            = "sale/purchase"
	pathSweepMsg               = "sale/sweep"
	pathUpdateConfigurationMsg = "sale/update_configuration"
)

type SetSaleStartDateMsg struct {
	StartDate bazaar.UnixTime `protobuf:"varint,1,opt,name=start_date,json=startDate,proto3,casttype=github.com/iov-one/bazaar.UnixTime" json:"start_date"`
}

func (SetSaleStartDateMsg) Path() string { return pathSetSaleStartDateMsg }

func (m *SetSaleStartDateMsg) Validate() error {
	return m.StartDate.Validate()
}

// OpenForSaleMsg lists a passport. A missing price disables the currency.
type OpenForSaleMsg struct {
	PassportID  uint64     `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
	PriceNative *coin.Coin `protobuf:"bytes,2,opt,name=price_native,json=priceNative,proto3" json:"price_native,omitempty"`
	PriceAlt    *coin.Coin `protobuf:"bytes,3,opt,name=price_alt,json=priceAlt,proto3" json:"price_alt,omitempty"`
}

func (OpenForSaleMsg) Path() string { return pathOpenForSaleMsg }

func (m *OpenForSaleMsg) Validate() error {
	if err := validID(m.PassportID); err != nil {
		return err
	}
	return validPrices(m.PriceNative, m.PriceAlt)
}

type SetPriceMsg struct {
	PassportID  uint64     `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
	PriceNative *coin.Coin `protobuf:"bytes,2,opt,name=price_native,json=priceNative,proto3" json:"price_native,omitempty"`
	PriceAlt    *coin.Coin `protobuf:"bytes,3,opt,name=price_alt,json=priceAlt,proto3" json:"price_alt,omitempty"`
}

func (SetPriceMsg) Path() string { return pathSetPriceMsg }

func (m *SetPriceMsg) Validate() error {
	if err := validID(m.PassportID); err != nil {
		return err
	}
	return validPrices(m.PriceNative, m.PriceAlt)
}

type PurchaseMsg struct {
	PassportID uint64   `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
	Currency   Currency `protobuf:"varint,2,opt,name=currency,proto3,enum=sale.Currency" json:"currency"`
}

func (PurchaseMsg) Path() string { return pathPurchaseMsg }

func (m *PurchaseMsg) Validate() error {
	return validID(m.PassportID)
}

type SweepMsg struct {
	Ticker string         `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	To     bazaar.Address `protobuf:"bytes,2,opt,name=to,proto3,casttype=github.com/iov-one/bazaar.Address" json:"to"`
}

func (SweepMsg) Path() string { return pathSweepMsg }

func (m *SweepMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", m.Ticker)
	}
	return errors.Wrap(m.To.Validate(), "recipient")
}

// UpdateConfigurationMsg patches the desk configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch"`
}

func (UpdateConfigurationMsg) Path() string { return pathUpdateConfigurationMsg }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}

func validID(id uint64) error {
	if id == 0 {
		return errors.Wrap(ErrCallerNotOwnerOrIDInvalid, "passport id")
	}
	return nil
}

func validPrices(native, alt *coin.Coin) error {
	for _, p := range []*coin.Coin{native, alt} {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return errors.Wrap(ErrPricesInvalid, err.Error())
		}
		if !p.IsNonNegative() {
			return errors.Wrapf(ErrPricesInvalid, "negative price %s", p)
		}
	}
	return nil
}

func orZero(c *coin.Coin) coin.Coin {
	if c == nil {
		return coin.Coin{}
	}
	return *c
}
