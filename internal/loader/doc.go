// Package loader reads and writes the mime map XML file.
//
// The file format is a sequence of <MimeType> elements under an
// <ArrayOfMimeType> root:
//
//	<ArrayOfMimeType>
//	  <MimeType primary="true">
//	    <Name>JPEG Image</Name>
//	    <FileExt>.jpg</FileExt>
//	    <FileExt>.jpeg</FileExt>
//	    <ContentType>image/jpeg</ContentType>
//	    <Category>Image</Category>
//	  </MimeType>
//	</ArrayOfMimeType>
//
// Decode returns one Result per element. Entries that fail validation are
// dropped from their record and listed in Result.Skipped, so one bad entry
// never prevents the rest of the file from loading.
package loader
