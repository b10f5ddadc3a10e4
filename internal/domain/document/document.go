// Package document describe una factura como páginas A4 de operaciones de dibujo
// con coordenadas absolutas en milímetros. No escribe bytes: eso lo hace un Writer
// de infraestructura, de modo que el layout se prueba sin PDF ni sistema de archivos.
package document

import "fmt"

// Dimensiones A4 vertical en mm.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)

// Color RGB.
type Color struct{ R, G, B uint8 }

// Align alineación horizontal de un texto respecto de su X.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Op operación de dibujo. Las implementaciones son FillRect, Line y Text.
type Op interface{ isOp() }

// FillRect rectángulo relleno.
type FillRect struct {
	X, Y, W, H float64
	Color      Color
}

// Line segmento de (X1,Y1) a (X2,Y2).
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
}

// Text uno o más renglones; Y es la línea base del primero.
// Los renglones siguientes bajan LineHeight(Size) cada uno.
type Text struct {
	X, Y  float64
	Lines []string
	Size  float64 // puntos
	Color Color
	Align Align
}

func (FillRect) isOp() {}
func (Line) isOp()     {}
func (Text) isOp()     {}

// Page lista ordenada de operaciones.
type Page struct {
	Ops []Op
}

// Document descripción completa lista para un Writer.
type Document struct {
	Title    string
	Subject  string
	Creator  string
	Filename string
	Pages    []Page
}

// LineHeight interlineado en mm para un tamaño de fuente en puntos (factor 1.15).
func LineHeight(size float64) float64 {
	return size * 1.15 * 25.4 / 72
}

// Filename nombre del artefacto: Invoice_<número>.pdf, sin sanear.
func Filename(invoiceNumber string) string {
	return fmt.Sprintf("Invoice_%s.pdf", invoiceNumber)
}

// Texts devuelve todas las operaciones de texto de la página, en orden.
func (p Page) Texts() []Text {
	var out []Text
	for _, op := range p.Ops {
		if t, ok := op.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}
