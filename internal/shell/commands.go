package shell

// handleAddStart initiates the add book conversation
func (s *Shell) handleAddStart() {
	s.startConversation(cmdAdd, "Enter the book title: ")
}

// handleDeleteStart initiates the delete book conversation
func (s *Shell) handleDeleteStart() {
	s.startConversation(cmdDelete, "Enter the id of the book to delete: ")
}

// handleSearchStart initiates the search conversation
func (s *Shell) handleSearchStart() {
	s.startConversation(cmdSearch, "Enter the field to search by (title, author, year): ")
}

// handleStatusStart initiates the status change conversation
func (s *Shell) handleStatusStart() {
	s.startConversation(cmdStatus, "Enter the book id: ")
}

// handleList shows every book in the catalog
func (s *Shell) handleList() {
	books := s.lib.List()
	if len(books) == 0 {
		s.send("The library has no books.")
		return
	}

	s.send("All books in the library:")
	s.renderBooks(books)
}
