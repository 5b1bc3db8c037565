package factory

// Standard namespace IRIs registered on every resolver.
const (
	// NamespaceRDF is the RDF vocabulary.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema vocabulary.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceOWL is the OWL 2 vocabulary.
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"

	// NamespaceXSD is the XML Schema datatype vocabulary.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceSWRL is the SWRL rule vocabulary.
	NamespaceSWRL = "http://www.w3.org/2003/11/swrl#"

	// NamespaceSWRLB is the SWRL core built-in library.
	NamespaceSWRLB = "http://www.w3.org/2003/11/swrlb#"
)

// Entity class IRIs used as datatypes of entity-valued cells.
const (
	ClassOWLClass              = NamespaceOWL + "Class"
	ClassOWLNamedIndividual    = NamespaceOWL + "NamedIndividual"
	ClassOWLObjectProperty     = NamespaceOWL + "ObjectProperty"
	ClassOWLDatatypeProperty   = NamespaceOWL + "DatatypeProperty"
	ClassOWLAnnotationProperty = NamespaceOWL + "AnnotationProperty"
)

// defaultPrefixes maps the standard prefixes to their namespaces.
var defaultPrefixes = map[string]string{
	"rdf":   NamespaceRDF,
	"rdfs":  NamespaceRDFS,
	"owl":   NamespaceOWL,
	"xsd":   NamespaceXSD,
	"swrl":  NamespaceSWRL,
	"swrlb": NamespaceSWRLB,
}
