// Package modeltest provides sample documents for tests.
package modeltest

import (
	"time"

	dec "github.com/rezonia/edo-upd/internal/decimal"
	"github.com/rezonia/edo-upd/internal/model"
)

// Fixed test identities
const (
	SellerINN = "7714365994"
	SellerKPP = "771401001"
	BuyerINN  = "7704451997"
	BuyerKPP  = "770401001"
)

// Date returns a UTC date
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Sender is the seller's EDM participant
func Sender() *model.EdmParticipant {
	return &model.EdmParticipant{OperatorID: "2LT", ParticipantID: "101"}
}

// Recipient is the buyer's EDM participant
func Recipient() *model.EdmParticipant {
	return &model.EdmParticipant{OperatorID: "2LT", ParticipantID: "106"}
}

// Operator is the EDM operator
func Operator() *model.EdmOperator {
	return &model.EdmOperator{ID: "2LT", Name: `ООО "Оператор-ЦРПТ"`, INN: "7731376812"}
}

// Seller is a legal person with a Russian address
func Seller() model.Organization {
	return model.Organization{
		Identity: &model.LegalPerson{Name: `ООО "СИЕНА"`, INN: SellerINN, KPP: SellerKPP},
		Address: &model.Address{Kind: &model.RussianAddress{
			ZipCode:    "125009",
			RegionCode: "77",
			City:       "Москва",
			Street:     "Тверская",
			Building:   "1",
		}},
		Contact: &model.Contact{Phones: []string{"+74950000000"}, Emails: []string{"info@siena.ru"}},
	}
}

// Buyer is a legal person with a Russian address
func Buyer() model.Organization {
	return model.Organization{
		Identity: &model.LegalPerson{Name: `ООО "ВАЛЬДО"`, INN: BuyerINN, KPP: BuyerKPP},
		Address: &model.Address{Kind: &model.RussianAddress{
			ZipCode:    "101000",
			RegionCode: "77",
			City:       "Москва",
			Street:     "Мясницкая",
			Building:   "10",
		}},
	}
}

// Signer is a legal-entity signer of the seller
func Signer() model.Signer {
	return model.Signer{
		Authority:     model.SignerAuthorityInvoiceAndTransaction,
		Status:        model.SignerStatusSellerEmployee,
		AuthorityBase: "Должностные обязанности",
		JobTitle:      "Генеральный директор",
		Kind: &model.LegalEntitySigner{
			FullName: model.FullName{Surname: "Иванов", FirstName: "Иван", Patronymic: "Иванович"},
			INN:      SellerINN,
			JobTitle: "Генеральный директор",
		},
	}
}

// SellerDocument is a СЧФДОП with two rows at 20% VAT totalling 100000/20000/120000
func SellerDocument(gen model.Generation) *model.SellerDocument {
	created := time.Date(2024, time.March, 15, 10, 30, 45, 0, time.UTC)
	seller := Seller()
	return &model.SellerDocument{
		Generation:         gen,
		FileID:             "ON_NSCHFDOPPR_2LT106_2LT101_20240315_00000000-0000-4000-8000-000000000001",
		ApplicationCreator: "edo-upd 1.0",
		Function:           model.FunctionInvoiceAndTransfer,
		CreatedAt:          created,
		Sender:             Sender(),
		Recipient:          Recipient(),
		Operator:           Operator(),
		Creator:            &seller,
		Number:             "42",
		Date:               Date(2024, time.March, 15),
		CurrencyCode:       "643",
		Sellers:            []model.Organization{Seller()},
		Buyers:             []model.Organization{Buyer()},
		Items: []model.InvoiceItem{
			{
				ProductName:   "Обувь мужская",
				UnitCode:      "796",
				UnitName:      "шт",
				Quantity:      dec.FromInt(10),
				Price:         dec.FromInt(5000),
				SumWithoutVAT: dec.FromInt(50000),
				TaxRate:       model.TaxRate20,
				VAT:           dec.Ptr(dec.FromInt(10000)),
				Sum:           dec.Ptr(dec.FromInt(60000)),
			},
			{
				ProductName:   "Обувь женская",
				UnitCode:      "796",
				UnitName:      "шт",
				Quantity:      dec.FromInt(5),
				Price:         dec.FromInt(10000),
				SumWithoutVAT: dec.FromInt(50000),
				TaxRate:       model.TaxRate20,
				VAT:           dec.Ptr(dec.FromInt(10000)),
				Sum:           dec.Ptr(dec.FromInt(60000)),
			},
		},
		Transfer: &model.TransferInfo{
			OperationName: "Товары переданы",
			Date:          ptr(Date(2024, time.March, 15)),
			BasisDocuments: []model.DocumentRef{
				{Name: "Договор поставки", Number: "7", Date: ptr(Date(2024, time.January, 10))},
			},
		},
		Signers: []model.Signer{Signer()},
	}
}

// BuyerDocument is an acceptance of SellerDocument
func BuyerDocument(gen model.Generation) *model.BuyerDocument {
	buyer := Buyer()
	return &model.BuyerDocument{
		Generation:         gen,
		FileID:             "ON_NSCHFDOPPOK_2LT101_2LT106_20240316_00000000-0000-4000-8000-000000000002",
		ApplicationCreator: "edo-upd 1.0",
		CreatedAt:          time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC),
		Sender:             Recipient(),
		Recipient:          Sender(),
		Operator:           Operator(),
		Creator:            &buyer,
		EdmDocumentID:      "a3f1c2d4-0000-4000-8000-000000000003",
		SellerInfo: &model.SellerDocumentInfo{
			FileID:       "ON_NSCHFDOPPR_2LT106_2LT101_20240315_00000000-0000-4000-8000-000000000001",
			CreatedDate:  "15.03.2024",
			CreatedTime:  "10.30.45",
			DocumentName: "Документ об отгрузке товаров (выполнении работ), передаче имущественных прав (документ об оказании услуг)",
			Function:     model.FunctionInvoiceAndTransfer,
			Number:       "42",
			Date:         "15.03.2024",
			Signatures:   []string{"TUlJ"},
		},
		Acceptance: model.AcceptanceInfo{
			OperationName: "Товары приняты без расхождений",
			Date:          ptr(Date(2024, time.March, 16)),
			Result:        &model.AcceptanceResult{Code: model.OperationCodeAccepted},
			Receiver: &model.Employee{
				FullName: model.FullName{Surname: "Петров", FirstName: "Пётр"},
				JobTitle: "Кладовщик",
			},
		},
		Signers: []model.Signer{{
			Authority:     model.SignerAuthorityTransaction,
			Status:        model.SignerStatusBuyerEmployee,
			AuthorityBase: "Должностные обязанности",
			JobTitle:      "Директор",
			Kind: &model.LegalEntitySigner{
				FullName: model.FullName{Surname: "Сидоров", FirstName: "Семён"},
				INN:      BuyerINN,
				JobTitle: "Директор",
			},
		}},
	}
}

func ptr[T any](v T) *T {
	return &v
}
