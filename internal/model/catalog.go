package model

import "encoding/base64"

// Built-in manual library. These are the condensed extracts of the master
// library that ship with the portal; trainers can restore them at any time
// from the settings panel.

const contentCuadernoRuta = `Manual: Cuaderno de Ruta del Asesor de Montaña.
- Mentalidad Sherpa: No despachar, guiar.
- Fases: Aproximación (evitar "¿Puedo ayudarte?"), Exploración (3 preguntas de oro: Actividad, Dónde, Experiencia), Equipamiento (Venta cruzada "Y SI..."), Cierre (Palabras de poder).
- Prohibiciones: Decir "No sé" o "Es barato".`

const contentRutaVendedor = `Manual: Formación Vendedor Maspormenos.
- Habilidades: Escucha activa y conocimiento experto.
- Ciclo de venta: Bienvenida -> Análisis -> Presentación -> Objeciones -> Cierre -> Post-Venta.`

const contentVisualStandards = `Manual: Estándares Visual Merchandising.
- Etiquetas: Verde (20%), Roja (50%), Azul (Final).
- Gometeado: Obligatorio según descuento.
- Planograma: Hombre > Mujer > Niño. Montaña prioridad sobre Deporte.
- Calzado: Pie derecho, dirección del paso, talla 38M/42H.
- Textil: Primera prenda vestida (3 capas), talla pequeña expuesta.`

const contentTPVBasico = `Manual: Manual Básico TPV FrontRetail.
- Identificación: Password + botón entrada (2).
- Venta: Lectura EAN, modificación de unidades o dtos pulsando sobre el campo.
- Cobro: Botón 'Fras. Simplificada'.
- Vales: Botón 'Anticipos/Vales' para aplicar o generar vales si el saldo es negativo.
- Consulta Ventas: Filtros por fecha y vendedor. Botón 'A Factura' para convertir ticket.`

const contentCierreCaja = `Manual: Cierre de Caja TPV.
- Cierre X: No obligatorio pero recomendable. Declarar Tarjeta GPRS y Vales antiguos.
- Cierre Z: OBLIGATORIO al finalizar. Declarar Tarjeta GPRS.
- Vales Antiguos: Enviar a central semanalmente a la atención de contabilidad.`

const contentCompraPersonal = `Manual: Condiciones de Compra de Personal.
- Descuentos: 40% Denim, 30% Deporte.
- Límites: Máximo 1000€ anuales por empleado.
- Restricciones: No aplica a Continuidad ni Complementos. Obligatorio pasar Tarjeta Club.
- Prohibiciones: Apartarse ropa, reservas en trastienda, autocobro o autodevolución.`

const contentEnvioFacturas = `Manual: Envío de Facturas desde TPV.
- Proceso: Botón 'Factura' -> Seleccionar/Crear cliente -> 'Consulta ventas' -> 'A factura' -> Elegir formato 'FACTURA MXM DIN4'.
- Envío: Botón 'Email' -> 'Cargar plantilla' -> Seleccionar tienda -> 'Aceptar' -> 'Enviar'.`

const contentProcedimientosPDA = `Manual: Procedimientos PDA Maspormenos.
- Pedido Web: Compras -> Picking devolución -> Buscar pedido -> Leer EAN -> Registrar.
- Roturas: Ajustes stock -> Negativo (para regularizar faltas web) o Positivo (si aparece stock perdido).
- Consulta Stock: Stock Real = Inventario - (Pedidos Tránsito + Ventas Tienda).
- Envíos Web: Usar prefijos obligatorios C- (Cambio), R- (Rotura), E- (Extra).`

const contentPostventa = `Manual: Nuevo Procedimiento Postventa.
- Garantía: Máximo 3 años con ticket/resguardo.
- Marcas Directas (+8000, Joluvi): Devolución inmediata al cliente.
- Marcas Técnicas (Sportiva, Bestard, Scarpa, Boreal): NO abonar sin autorización de la marca (reparación).
- Registro: 5 fotos obligatorias: General, Suela, Defecto, Ticket y Lengüeta.`

const contentInventariosPDA = `Manual: Gestión de Inventarios PDA.
- Pasos: Menú Inventario -> Agrupación de Inventario -> Cargar marcas lanzadas por central -> Bipar artículos (sin orden específico) -> Registrar.
- Nota: La PDA actualiza el stock al último registro realizado.`

const contentRecepcionMercancia = `Manual: Recepción de Mercancía en Tienda.
- Regla de Oro: Recepcionar SIEMPRE antes de sacar el producto a la venta.
- Incidencias: Si faltan bultos en la expedición, NO recepcionar hasta tener todo.
- Identificación: Albaranes AVI indican número de pedido, tienda destino y bultos.`

const contentTextilCalzado = `Manual: Tecnología Textil y Calzado 2023.
- Membranas: Gore-Tex (microporosa, impermeable y transpirable).
- Mantenimiento: DWR (repelencia) se reactiva con calor (secadora/plancha).
- Materiales: Cordura (abrasión), Coolmax (humedad), Polartec (forro térmico), Primaloft (pluma sintética).
- Calzado: Pisada Neutra, Pronadora o Supinadora. Drop (diferencia talón-punta). Amortiguación (Gel, Wave, Boost).`

const contentMaterialEscalada = `Manual: Material Técnico de Escalada.
- Cuerdas: Dinámicas (para escalar), Estáticas (prohibido escalar).
- Mosquetones: HMS (forma de pera para asegurar).
- Pies de gato: Simétricos (confort), Asimétricos (precisión), Agresivos (desplomes).
- Vida útil: Textil (arnés/cuerdas) 5-10 años. Revisión pre-uso obligatoria.`

const contentEquipamiento = `Manual: Guía Equipamiento Montaña 2026.
- Sistema 3 Capas: 1ª (Humedad/No algodón), 2ª (Calor/Pluma o Fibra), 3ª (Protección/Gore-Tex).
- Calzado: Zapatillas (senderos), Botas (tobillo), Semirrígidas (cramponables), Rígidas (hielo).
- Mochilas: Ajuste lumbar debe soportar el 80% del peso.`

func encodeText(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DefaultManuals returns a fresh copy of the built-in catalog. Used to seed
// an empty database and by the factory reset operation.
func DefaultManuals() []Manual {
	const uploadDate = "2025-02-27"
	entry := func(id, name string, cat ManualCategory, content string) Manual {
		return Manual{
			ID:         id,
			Name:       name,
			UploadDate: uploadDate,
			Category:   cat,
			FileData:   encodeText(content),
			MimeType:   "text/plain",
		}
	}
	return []Manual{
		entry("m_atc_01", "Cuaderno de Ruta del Asesor", CategoryAtencionCliente, contentCuadernoRuta),
		entry("m_atc_02", "La Ruta del Vendedor (Resumen)", CategoryAtencionCliente, contentRutaVendedor),
		entry("m_ope_00", "Manual Básico TPV FrontRetail", CategoryOperativa, contentTPVBasico),
		entry("m_ope_01", "Cierre de Caja TPV (X/Z)", CategoryOperativa, contentCierreCaja),
		entry("m_ope_02", "Condiciones Compra Personal", CategoryOperativa, contentCompraPersonal),
		entry("m_ope_03", "Manual Envío Facturas", CategoryOperativa, contentEnvioFacturas),
		entry("m_ope_04", "Procedimientos PDA Completo", CategoryOperativa, contentProcedimientosPDA),
		entry("m_ope_05", "Nuevo Procedimiento Postventa", CategoryOperativa, contentPostventa),
		entry("m_ope_06", "Gestión de Inventarios PDA", CategoryOperativa, contentInventariosPDA),
		entry("m_ope_07", "Recepción de Mercancía", CategoryOperativa, contentRecepcionMercancia),
		entry("m_prod_01", "Tecnología Textil y Calzado 2023", CategoryProducto, contentTextilCalzado),
		entry("m_prod_02", "Material Técnico de Escalada", CategoryProducto, contentMaterialEscalada),
		entry("m_prod_03", "Guía Equipamiento Montaña 2026", CategoryProducto, contentEquipamiento),
		entry("m_vis_01", "Estándares Visual Merchandising", CategoryVisual, contentVisualStandards),
	}
}

// Stores lists the store centers available at student login.
var Stores = []string{
	"Vilafranca", "Haro", "Vitoria", "Tolosa", "Denim", "Collado",
	"Dantxarinea", "Zarautz", "Oiarzaum", "Mora", "Natural", "Getafe", "Pamplona",
}
