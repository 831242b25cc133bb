// Package catalog holds the controlled vocabularies for product categories.
// Values are fixed domain data: they must match the literals used by existing
// databases and CSV exports, so they stay in Portuguese.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Brands is the closed set of valid product brands.
var Brands = []string{
	"Eudora", "O Boticário", "Jequiti", "Avon", "Mary Kay", "Natura",
	"Oui-Original-Unique-Individuel", "Pierre Alexander", "Tupperware",
}

// Styles is the closed set of valid product styles.
var Styles = []string{
	"Perfumaria", "Skincare", "Cabelo", "Corpo e Banho", "Make", "Masculinos", "Femininos Nina Secrets",
	"Marcas", "Infantil", "Casa", "Solar", "Maquiage", "Teen", "Kits e Presentes",
	"Cuidados com o Corpo", "Lançamentos",
	"Acessórios de Casa",
}

// Types is the closed set of valid product types.
var Types = []string{
	"Perfumaria masculina", "Perfumaria feminina", "Body splash", "Body spray", "Eau de parfum",
	"Desodorantes", "Perfumaria infantil", "Perfumaria vegana", "Familia olfativa",
	"Clareador de manchas", "Anti-idade", "Protetor solar facial", "Rosto",
	"Tratamento para o rosto", "Acne", "Limpeza", "Esfoliante", "Tônico facial",
	"Kits de tratamento", "Tratamento para cabelos", "Shampoo", "Condicionador",
	"Leave-in e Creme para Pentear", "Finalizador", "Modelador", "Acessórios",
	"Kits e looks", "Boca", "Olhos", "Pincéis", "Paleta", "Unhas", "Sobrancelhas",
	"Kits de tratamento", "Hidratante", "Cuidados pós-banho", "Cuidados para o banho",
	"Barba", "Óleo corporal", "Cuidados íntimos", "Unissex", "Bronzeamento",
	"Protetor solar", "Depilação", "Mãos", "Lábios", "Pés", "Pós sol",
	"Protetor solar corporal", "Colônias", "Estojo", "Sabonetes",
	"Creme hidratante para as mãos", "Creme hidratante para os pés", "Miniseries",
	"Kits de perfumes", "Antissinais", "Máscara", "Creme bisnaga",
	"Roll On Fragranciado", "Roll On On Duty", "Sabonete líquido",
	"Sabonete em barra", "Shampoo 2 em 1", "Spray corporal", "Booster de Tratamento",
	"Creme para Pentear", "Óleo de Tratamento", "Pré-shampoo",
	"Sérum de Tratamento", "Shampoo e Condicionador",
	"Garrafas", "Armazenamentos", "Micro-ondas", "Servir", "Preparo",
	"Infantil", "Lazer/Outdoor", "Presentes",
}

var titleCaser = cases.Title(language.BrazilianPortuguese)

// Normalize trims the input and title-cases each word, so that e.g.
// "eudorA" and "o boticário" match the stored vocabulary entries.
func Normalize(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// ValidBrand reports whether the (already normalized) value is a known brand.
func ValidBrand(s string) bool { return contains(Brands, s) }

// ValidStyle reports whether the (already normalized) value is a known style.
func ValidStyle(s string) bool { return contains(Styles, s) }

// ValidType reports whether the (already normalized) value is a known type.
func ValidType(s string) bool { return contains(Types, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Sample returns the first n entries joined for use in chat prompts,
// followed by an ellipsis when the set is longer.
func Sample(set []string, n int) string {
	if n >= len(set) {
		return strings.Join(set, ", ")
	}
	return strings.Join(set[:n], ", ") + "..."
}
