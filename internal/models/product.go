package models

const (
	SuspendidoTrue  = "VERDADERO"
	SuspendidoFalse = "FALSO"
)

// Product represents a row of the product catalog table.
// JSON keys match the column names; decoding is case-insensitive so the
// browser's camelCase form payload binds to the same fields.
type Product struct {
	IdProducto           string `json:"IdProducto" csv:"IdProducto"`
	NombreProducto       string `json:"NombreProducto" csv:"NombreProducto"`
	Proveedor            string `json:"Proveedor" csv:"Proveedor"`
	Categoria            string `json:"Categoria" csv:"Categoria"`
	CantidadPorUnidad    string `json:"CantidadPorUnidad" csv:"CantidadPorUnidad"`
	PrecioUnidad         string `json:"PrecioUnidad" csv:"PrecioUnidad"`
	UnidadesEnExistencia string `json:"UnidadesEnExistencia" csv:"UnidadesEnExistencia"`
	UnidadesEnPedido     string `json:"UnidadesEnPedido" csv:"UnidadesEnPedido"`
	NivelNuevoPedido     string `json:"NivelNuevoPedido" csv:"NivelNuevoPedido"`
	Suspendido           string `json:"Suspendido" csv:"Suspendido"`
}
