package syntax

// Node and token kinds of the C# grammar the engine keys on.
const (
	KindCompilationUnit = "compilation_unit"
	KindIdentifier      = "identifier"
	KindDeclarationList = "declaration_list"
	KindBlock           = "block"
	KindArrowExpression = "arrow_expression_clause"

	KindClassDeclaration       = "class_declaration"
	KindStructDeclaration      = "struct_declaration"
	KindRecordDeclaration      = "record_declaration"
	KindInterfaceDeclaration   = "interface_declaration"
	KindConstructorDeclaration = "constructor_declaration"
	KindMethodDeclaration      = "method_declaration"

	KindBaseList          = "base_list"
	KindTypeParameterList = "type_parameter_list"
	KindTypeParameter     = "type_parameter"
	KindParameterList     = "parameter_list"
	KindParameter         = "parameter"

	KindThrowStatement           = "throw_statement"
	KindThrowExpression          = "throw_expression"
	KindReturnStatement          = "return_statement"
	KindObjectCreationExpression = "object_creation_expression"
	KindArgumentList             = "argument_list"
	KindArgument                 = "argument"
	KindInitializerExpression    = "initializer_expression"

	KindStringLiteral                = "string_literal"
	KindVerbatimStringLiteral        = "verbatim_string_literal"
	KindRawStringLiteral             = "raw_string_literal"
	KindInterpolatedStringExpression = "interpolated_string_expression"
	KindCharacterLiteral             = "character_literal"
)

// IsTypeDeclaration reports whether kind declares a type that can own members.
func IsTypeDeclaration(kind string) bool {
	switch kind {
	case KindClassDeclaration, KindStructDeclaration, KindRecordDeclaration, KindInterfaceDeclaration:
		return true
	}
	return false
}

// IsStringLike reports whether kind is a literal whose content must be kept
// as a single token.
func IsStringLike(kind string) bool {
	switch kind {
	case KindStringLiteral, KindVerbatimStringLiteral, KindRawStringLiteral,
		KindInterpolatedStringExpression, KindCharacterLiteral:
		return true
	}
	return false
}
