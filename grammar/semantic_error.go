package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction      = newSemanticError("a grammar needs at least one production")
	semErrInvalidLHS        = newSemanticError("the head of a production must be one non-terminal symbol")
	semErrUndefinedSym      = newSemanticError("undefined symbol")
	semErrUndefinedStartSym = newSemanticError("the start symbol has no production")
	semErrReservedSym       = newSemanticError("the end marker (U+0000) cannot appear in a production")
	semErrDirInvalidName    = newSemanticError("invalid directive name")
	semErrDirInvalidParam   = newSemanticError("invalid parameter")
	semErrDuplicateDir      = newSemanticError("a directive cannot be specified more than once")
)
