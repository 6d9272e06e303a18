package services

// StandardListItem is one predefined entry of a standard list
type StandardListItem struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
}

// StandardList is a predefined shopping list for an educational stage. Its
// items run through the regular suggestion pipeline when instantiated.
type StandardList struct {
	Type        string             `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Items       []StandardListItem `json:"items"`
}

var standardLists = map[string]StandardList{
	"preescolar": {
		Type:        "preescolar",
		Name:        "Lista Preescolar",
		Description: "Productos para niños en etapa preescolar",
		Items: []StandardListItem{
			{"Cuaderno de dibujo A4", 3},
			{"Lápiz grafito HB", 5},
			{"Goma de borrar", 2},
			{"Sacapuntas", 1},
			{"Caja de lápices de colores", 2},
			{"Caja de crayones", 1},
			{"Pegamento en barra", 2},
			{"Tijeras de punta roma", 1},
			{"Mochila pequeña", 1},
			{"Estuche para lápices", 1},
		},
	},
	"basica": {
		Type:        "basica",
		Name:        "Lista Básica - Educación Primaria",
		Description: "Productos esenciales para estudiantes de educación básica (1° a 8° básico)",
		Items: []StandardListItem{
			{"Cuaderno universitario 100 hojas", 5},
			{"Lápiz grafito HB", 10},
			{"Goma de borrar", 2},
			{"Sacapuntas", 1},
			{"Regla de 30 cm", 1},
			{"Tijeras escolares", 1},
			{"Pegamento en barra", 2},
			{"Caja de lápices de colores", 1},
			{"Mochila escolar", 1},
			{"Estuche para lápices", 1},
		},
	},
	"media": {
		Type:        "media",
		Name:        "Lista Media - Educación Secundaria",
		Description: "Productos para estudiantes de educación media (1° a 4° medio)",
		Items: []StandardListItem{
			{"Cuaderno universitario 100 hojas", 8},
			{"Lápiz grafito HB", 15},
			{"Goma de borrar", 3},
			{"Sacapuntas", 1},
			{"Regla de 30 cm", 1},
			{"Tijeras escolares", 1},
			{"Pegamento en barra", 2},
			{"Caja de lápices de colores", 1},
			{"Mochila escolar", 1},
			{"Estuche para lápices", 1},
			{"Calculadora científica", 1},
			{"Block de dibujo A4", 2},
			{"Lápiz grafito 2B", 5},
			{"Compás", 1},
			{"Transportador", 1},
		},
	},
	"universidad": {
		Type:        "universidad",
		Name:        "Lista Universitaria",
		Description: "Productos para estudiantes universitarios",
		Items: []StandardListItem{
			{"Cuaderno universitario 100 hojas", 10},
			{"Lápiz grafito HB", 20},
			{"Goma de borrar", 5},
			{"Sacapuntas", 2},
			{"Regla de 30 cm", 1},
			{"Tijeras escolares", 1},
			{"Pegamento en barra", 3},
			{"Caja de lápices de colores", 1},
			{"Mochila universitaria", 1},
			{"Estuche para lápices", 1},
			{"Calculadora científica avanzada", 1},
			{"Block de dibujo A4", 5},
			{"Lápiz grafito 2B", 10},
			{"Carpeta con ganchos", 2},
			{"USB 16GB", 1},
		},
	},
}

// standardListOrder keeps listing output stable
var standardListOrder = []string{"preescolar", "basica", "media", "universidad"}

// GetStandardList returns a predefined list by type
func GetStandardList(listType string) (StandardList, bool) {
	l, ok := standardLists[listType]
	return l, ok
}

// ListStandardLists returns all predefined lists in a fixed order
func ListStandardLists() []StandardList {
	out := make([]StandardList, 0, len(standardLists))
	for _, t := range standardListOrder {
		out = append(out, standardLists[t])
	}
	return out
}
