package achievements

// MaxNameLen es el largo máximo del nombre de un logro.
const MaxNameLen = 64

// Achievement es un logro (badge) que un gato puede obtener.
// Los nombres son únicos; se crean on-demand al asignarlos a un gato.
type Achievement struct {
	ID   string
	Name string
}
