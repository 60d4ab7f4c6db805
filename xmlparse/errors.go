package xmlparse

import "fmt"

// ErrorKind is the closed set of well-formedness and resource errors the
// engine can raise. Exactly one is ever active on a given Parser: once
// set, it is sticky until Init resets the instance.
type ErrorKind int

// The zero value, ErrNone, means "no error yet". Ordering matches the
// reference implementation's LwXMLP_enumErrorType so the numeric value
// of an error is stable across this package's history.
const (
	ErrNone ErrorKind = iota
	ErrMissingEqual
	ErrQuotesMissmatch
	ErrMissingQuote
	ErrInvalidXMLCharacter
	ErrInvalidStartNameCharacter
	ErrInvalidNameCharacter
	ErrCallBackErrorOnPIDirective
	ErrCallBackErrorOnStartElement
	ErrCallBackErrorOnData
	ErrCallBackErrorOnEndElement
	ErrCallBackErrorOnComment
	ErrUnexpectedElementType
	ErrFailedToGetElementInfo
	ErrFailedToAddElementToPath
	ErrFailedToExtractAttributes
	ErrWrongNesting
	ErrLargeElementLength
	ErrLargeElementNameProperty
	ErrLargeNumberOfAttributeList
	ErrWrongAttributeFormat
	ErrWrongDeclarationLocation
	ErrUnsupportedEncodingScheme
	ErrUnExpectedDirectiveType
	ErrDoubleHyphenInComment
	ErrWrongDirectiveEnd
	ErrMissingAttributeValue
	ErrEncodingError
	ErrMissingSemicolon
	ErrExtraContentAtTheEnd
	ErrRepeatedAttributeName
	ErrLargeNumberOfAttributes
	ErrLargeAttributeNameProperty
	ErrLargeDatalength
	ErrLargeDTDPortionlength
	ErrLargeDirectiveProperty
	ErrLargeElementProperty
	ErrLargeResolvingTrialsProperty
	ErrLargeChildrenOperatorsProperty
	ErrLargeEntityCountProperty
	ErrLargeEntityNameProperty
	ErrLargeEntityValueProperty
	ErrDataWithoutStartTag
	ErrInvalidReference
	ErrInvalidVersionOrder
	ErrInvalidSDeclOrder
	ErrInvalidPIName
	ErrMissingWhiteSpaceCharacter
	ErrIllegalWhiteSpace
	ErrDTDMissingSystemIDError
	ErrDTDMissingPortionError
	ErrIncompleteEntityContent
	ErrDTDInvalidAttributeType
	ErrDTDInvalidDefaultDeclaration
	ErrDTDCapitalPortionError
	ErrParsedEntityError
	ErrMissingPITarget
	ErrInvalidParameterEntity
	ErrInvalidRootToken
	ErrMissingEndOfEntity
	ErrGeneralEntityInDTD
	ErrInvalidAttributeValue
	ErrInvalidOperator
	ErrMissingSeparator
	ErrPEReferencesinInInternalSubset
	ErrPartialCharacterReference
	ErrInvalidDirectReference
	ErrEntityRefereToItself
	ErrAttributeInEndTag
	ErrFeatureNotSupported
	ErrInternalError
	ErrInvalidPassingParameter
	ErrEncodingDiscrepancy
	errMaxErrorKind
)

var errorStrings = [...]string{
	ErrNone:                           "no error",
	ErrMissingEqual:                   "missing '=' between attribute name and value",
	ErrQuotesMissmatch:                "mismatched attribute value quotes",
	ErrMissingQuote:                   "missing attribute value quote",
	ErrInvalidXMLCharacter:            "invalid XML character",
	ErrInvalidStartNameCharacter:      "invalid name start character",
	ErrInvalidNameCharacter:           "invalid name character",
	ErrCallBackErrorOnPIDirective:     "callback rejected processing instruction",
	ErrCallBackErrorOnStartElement:    "callback rejected start element",
	ErrCallBackErrorOnData:            "callback rejected character data",
	ErrCallBackErrorOnEndElement:      "callback rejected end element",
	ErrCallBackErrorOnComment:         "callback rejected comment",
	ErrUnexpectedElementType:          "unexpected element type",
	ErrFailedToGetElementInfo:         "failed to extract element info",
	ErrFailedToAddElementToPath:       "failed to add element to path",
	ErrFailedToExtractAttributes:      "failed to extract attributes",
	ErrWrongNesting:                   "wrong element nesting",
	ErrLargeElementLength:             "element length exceeds working buffer",
	ErrLargeElementNameProperty:       "element name exceeds maximum length",
	ErrLargeNumberOfAttributeList:     "too many attribute list declarations",
	ErrWrongAttributeFormat:           "wrong attribute format",
	ErrWrongDeclarationLocation:       "declaration in wrong location",
	ErrUnsupportedEncodingScheme:      "unsupported encoding scheme",
	ErrUnExpectedDirectiveType:        "unexpected directive type",
	ErrDoubleHyphenInComment:          "double hyphen inside comment",
	ErrWrongDirectiveEnd:              "could not find end of directive",
	ErrMissingAttributeValue:          "missing attribute value",
	ErrEncodingError:                  "error while transcoding input",
	ErrMissingSemicolon:               "missing ';' ending a reference",
	ErrExtraContentAtTheEnd:           "extra content at the end of the document",
	ErrRepeatedAttributeName:          "repeated attribute name",
	ErrLargeNumberOfAttributes:        "too many attributes on element",
	ErrLargeAttributeNameProperty:     "attribute name exceeds maximum length",
	ErrLargeDatalength:                "data exceeds working buffer",
	ErrLargeDTDPortionlength:          "DTD portion exceeds working buffer",
	ErrLargeDirectiveProperty:         "directive exceeds working buffer",
	ErrLargeElementProperty:           "element exceeds working buffer",
	ErrLargeResolvingTrialsProperty:   "entity resolving depth exceeded",
	ErrLargeChildrenOperatorsProperty: "too many operators in content model",
	ErrLargeEntityCountProperty:       "too many declared entities",
	ErrLargeEntityNameProperty:        "entity name exceeds maximum length",
	ErrLargeEntityValueProperty:       "entity value exceeds maximum length",
	ErrDataWithoutStartTag:            "character data found outside any element",
	ErrInvalidReference:               "invalid character reference",
	ErrInvalidVersionOrder:            "invalid version attribute order",
	ErrInvalidSDeclOrder:              "invalid standalone declaration order",
	ErrInvalidPIName:                  "invalid processing instruction target name",
	ErrMissingWhiteSpaceCharacter:     "missing required whitespace",
	ErrIllegalWhiteSpace:              "illegal whitespace",
	ErrDTDMissingSystemIDError:        "DTD missing SYSTEM identifier",
	ErrDTDMissingPortionError:         "DTD missing required portion",
	ErrIncompleteEntityContent:        "incomplete entity content",
	ErrDTDInvalidAttributeType:        "invalid DTD attribute type",
	ErrDTDInvalidDefaultDeclaration:   "invalid DTD attribute default declaration",
	ErrDTDCapitalPortionError:         "DTD keyword must be upper case",
	ErrParsedEntityError:              "parsed entity is not well-formed",
	ErrMissingPITarget:                "missing processing instruction target",
	ErrInvalidParameterEntity:         "invalid parameter entity reference",
	ErrInvalidRootToken:               "invalid token at document root",
	ErrMissingEndOfEntity:             "missing end of entity",
	ErrGeneralEntityInDTD:             "general entity reference found in DTD",
	ErrInvalidAttributeValue:          "invalid attribute value",
	ErrInvalidOperator:                "invalid content model operator",
	ErrMissingSeparator:               "missing separator in content model choice",
	ErrPEReferencesinInInternalSubset: "parameter entity reference inside internal subset declaration",
	ErrPartialCharacterReference:      "partial character reference",
	ErrInvalidDirectReference:         "entity value resolves to a literal '<'",
	ErrEntityRefereToItself:           "entity refers to itself",
	ErrAttributeInEndTag:              "attribute present in end tag",
	ErrFeatureNotSupported:            "feature not supported",
	ErrInternalError:                  "internal error",
	ErrInvalidPassingParameter:        "invalid parameter passed to parser",
	ErrEncodingDiscrepancy:            "encoding declaration conflicts with byte order mark",
}

// String renders the short English sentence for an ErrorKind, matching
// the reference implementation's error-string accessor.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorStrings) || errorStrings[k] == "" {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorStrings[k]
}

// ParseError is the error type returned once the engine has latched an
// error. Line and Column reflect the cursor position at the time the
// error was raised.
type ParseError struct {
	Kind   ErrorKind
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Kind, e.Line, e.Column)
}
