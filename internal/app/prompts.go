package app

import "fmt"

// SystemInstruction is sent with every generation request.
const SystemInstruction = "You are a travel assistant that provides users with the five most attractive places near their entered location. " +
	"Additionally, you fetch the most-watched YouTube videos related to those attractions and display the cheapest available hotel near that location. " +
	"Ensure that the responses are concise, informative, and visually engaging where applicable."

func AttractionsPrompt(location string) string {
	return fmt.Sprintf("List only the top 5 tourist attractions near %s. Provide each in 'Name: Description' format.", location)
}

func HotelPrompt(location string) string {
	return fmt.Sprintf("Provide only the name and price of the cheapest hotel in %s. Format: 'Hotel Name - $Price per night'", location)
}
