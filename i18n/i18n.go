// Package i18n holds the translation tables used for API messages and printed invoices.
package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when no supported language can be detected.
const DefaultLang = "fr"

type ctxKey struct{}

var translations = map[string]map[string]string{
	"fr": {
		"required":                      "Requis",
		"must_be_positive":              "Doit être positif",
		"must_not_be_negative":          "Ne doit pas être négatif",
		"out_of_range":                  "Hors limites",
		"invalid_choice":                "Valeur invalide",
		"items_required_when_not_draft": "Une facture non brouillon doit contenir au moins un article",
		"item_already_added":            "Cet article est déjà sur la facture",
		"not_found":                     "Introuvable",
		"unknown_customer":              "Client inconnu",
		"pdf.invoiceTitle":              "FACTURE",
		"pdf.phoneLabel":                "Tél",
		"pdf.emailLabel":                "Email",
		"pdf.vatIdLabel":                "Matricule Fiscal",
		"pdf.invoiceNumberLabel":        "Facture N°",
		"pdf.invoiceDateLabel":          "Date de Facture",
		"pdf.dueDateLabel":              "Date d'échéance",
		"pdf.billToLabel":               "FACTURÉ À",
		"pdf.customerVatLabel":          "N° TVA",
		"pdf.table.ref":                 "RÉF.",
		"pdf.table.designation":         "DÉSIGNATION",
		"pdf.table.unitPrice":           "P.U. HT",
		"pdf.table.qty":                 "QTÉ",
		"pdf.table.totalHT":             "MONTANT HT",
		"pdf.totalHT":                   "Total HT",
		"pdf.vatAmount":                 "Montant TVA",
		"pdf.totalTTC":                  "TOTAL TTC",
		"pdf.footer":                    "Conditions de paiement: Paiement à réception de facture. Merci de votre confiance.",
		"pdf.invoiceFileName":           "Facture",
	},
	"en": {
		"required":                      "Required",
		"must_be_positive":              "Must be positive",
		"must_not_be_negative":          "Must not be negative",
		"out_of_range":                  "Out of range",
		"invalid_choice":                "Invalid value",
		"items_required_when_not_draft": "A non-draft invoice must contain at least one item",
		"item_already_added":            "This part is already on the invoice",
		"not_found":                     "Not found",
		"unknown_customer":              "Unknown Customer",
		"pdf.invoiceTitle":              "INVOICE",
		"pdf.phoneLabel":                "Phone",
		"pdf.emailLabel":                "Email",
		"pdf.vatIdLabel":                "Tax ID",
		"pdf.invoiceNumberLabel":        "Invoice No.",
		"pdf.invoiceDateLabel":          "Invoice Date",
		"pdf.dueDateLabel":              "Due Date",
		"pdf.billToLabel":               "BILL TO",
		"pdf.customerVatLabel":          "Customer VAT",
		"pdf.table.ref":                 "REF.",
		"pdf.table.designation":         "DESCRIPTION",
		"pdf.table.unitPrice":           "UNIT PRICE",
		"pdf.table.qty":                 "QTY",
		"pdf.table.totalHT":             "TOTAL",
		"pdf.totalHT":                   "Subtotal",
		"pdf.vatAmount":                 "VAT Amount",
		"pdf.totalTTC":                  "TOTAL (incl. tax)",
		"pdf.footer":                    "Payment terms: Payment upon receipt of invoice. Thank you for your business.",
		"pdf.invoiceFileName":           "Invoice",
	},
	"ar": {
		"required":                      "مطلوب",
		"must_be_positive":              "يجب أن يكون موجبا",
		"unknown_customer":              "عميل غير معروف",
		"not_found":                     "غير موجود",
		"items_required_when_not_draft": "يجب أن تحتوي الفاتورة غير المسودة على عنصر واحد على الأقل",
		"pdf.invoiceTitle":              "فاتورة",
		"pdf.phoneLabel":                "الهاتف",
		"pdf.emailLabel":                "البريد الإلكتروني",
		"pdf.vatIdLabel":                "المعرف الجبائي",
		"pdf.invoiceNumberLabel":        "رقم الفاتورة",
		"pdf.invoiceDateLabel":          "تاريخ الفاتورة",
		"pdf.dueDateLabel":              "تاريخ الاستحقاق",
		"pdf.billToLabel":               "فوترة إلى",
		"pdf.customerVatLabel":          "الرقم الضريبي للعميل",
		"pdf.table.ref":                 "المرجع",
		"pdf.table.designation":         "الوصف",
		"pdf.table.unitPrice":           "سعر الوحدة",
		"pdf.table.qty":                 "الكمية",
		"pdf.table.totalHT":             "المجموع",
		"pdf.totalHT":                   "المجموع (قبل الضريبة)",
		"pdf.vatAmount":                 "قيمة الضريبة",
		"pdf.totalTTC":                  "المجموع الكلي",
		"pdf.footer":                    "شروط الدفع: الدفع عند استلام الفاتورة. شكرا لثقتكم.",
		"pdf.invoiceFileName":           "فاتورة",
	},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// IsRTL reports whether lang is written right to left.
func IsRTL(lang string) bool { return lang == "ar" }

// DetectLanguage picks the first supported language of an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if Supported(base) {
			return base
		}
	}
	return DefaultLang
}

// T translates code into lang, falling back to French and then to the code itself.
func T(lang, code string) string {
	if tbl, ok := translations[lang]; ok {
		if s, ok := tbl[code]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLang][code]; ok {
		return s
	}
	return code
}

// TranslateAll returns a copy of violations with each code translated.
func TranslateAll(lang string, codes map[string]string) map[string]string {
	out := make(map[string]string, len(codes))
	for field, code := range codes {
		out[field] = T(lang, code)
	}
	return out
}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFrom returns the language stored in ctx, or DefaultLang.
func LangFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLang
}
