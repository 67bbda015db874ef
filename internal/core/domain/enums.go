// internal/core/domain/enums.go
package domain

// EventType identifica el tipo de dato que transporta un Event.
type EventType string

const (
	// EventTypeRoot es el evento raíz de un escaneo; Data es el target.
	EventTypeRoot EventType = "ROOT"

	// EventTypeDomainName nombre de dominio o host
	EventTypeDomainName EventType = "DOMAIN_NAME"

	// EventTypeHumanName nombre de una persona
	EventTypeHumanName EventType = "HUMAN_NAME"

	// EventTypeEmailAddr dirección de correo
	EventTypeEmailAddr EventType = "EMAILADDR"

	// EventTypeURLStatic URL estática descubierta
	EventTypeURLStatic EventType = "URL_STATIC"

	// EventTypeIPAddress dirección IP
	EventTypeIPAddress EventType = "IP_ADDRESS"

	// EventTypeAny se usa en WatchedEvents para recibir todo.
	EventTypeAny EventType = "*"
)

// artifactKinds is the fixed artifact taxonomy, in emission order.
var artifactKinds = [...]EventType{
	EventTypeHumanName,
	EventTypeEmailAddr,
	EventTypeDomainName,
	EventTypeURLStatic,
	EventTypeIPAddress,
}

// ArtifactKinds retorna los cinco tipos de artefacto en orden fijo.
func ArtifactKinds() []EventType {
	out := make([]EventType, len(artifactKinds))
	copy(out, artifactKinds[:])
	return out
}

// IsArtifact reports whether t is one of the five artifact kinds.
func (t EventType) IsArtifact() bool {
	for _, k := range artifactKinds {
		if k == t {
			return true
		}
	}
	return false
}

// IsValid verifica si el tipo de evento es conocido.
func (t EventType) IsValid() bool {
	return t == EventTypeRoot || t.IsArtifact()
}

// String retorna la representación string del tipo.
func (t EventType) String() string {
	return string(t)
}
